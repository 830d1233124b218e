package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/granular/pkg/commands/options"
	"tableflip.dev/granular/pkg/runner/track"
)

func addTracker(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "tracker",
		Short: "Manage trackers",
		Long:  "Trackers record recurring measurements: habit checkins, quantities, scales, pips.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTrackerAdd(cmd)
	addTrackerList(cmd)

	topLevel.AddCommand(cmd)
}

func addTrackerAdd(parent *cobra.Command) {
	co := &options.CreateOptions{}
	to := &options.TrackerOptions{}
	name := ""

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a tracker",
		Example: `
granular tracker add meditation --frequency=daily --value-type=checkin
granular tracker add running --value-type=quantitative --unit=km
granular tracker add mood --value-type=multi_select --scale-min=1 --scale-max=5
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a tracker name")
			}
			name = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := track.Add{
					Repo:        env.repo,
					IDs:         env.ids,
					Config:      env.config,
					Name:        name,
					Description: to.Description,
					Frequency:   to.Frequency,
					Value:       to.Value,
					Unit:        to.Unit,
					ScaleMin:    to.ScaleMin,
					ScaleMax:    to.ScaleMax,
					Options:     to.Options,
					Project:     co.Project,
					Tags:        co.Tags,
					Color:       co.Color,
				}
				return s.Do(ctx)
			})
		},
	}

	options.AddCreateArgs(cmd, co)
	options.AddTrackerArgs(cmd, to)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addTrackerList(parent *cobra.Command) {
	days := 0

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the tracker heatmap",
		Example: `
granular tracker list
granular tracker list --days 30
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := track.Heatmap{Repo: env.repo, IDs: env.ids, Config: env.config, Days: days}
				return s.Do(ctx)
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Window size in days. Defaults to a fortnight.")
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}
