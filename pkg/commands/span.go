package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/granular/pkg/commands/options"
	"tableflip.dev/granular/pkg/runner/add"
	"tableflip.dev/granular/pkg/runner/get"
	"tableflip.dev/granular/pkg/view"
)

func addSpan(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "span",
		Short: "Manage timespans",
		Long:  "Timespans are long-running blocks of intent: sprints, focus periods, trips.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addSpanAdd(cmd)
	addSpanList(cmd)

	topLevel.AddCommand(cmd)
}

func addSpanAdd(parent *cobra.Command) {
	co := &options.CreateOptions{}
	wo := &options.WhenOptions{}
	projects := []string{}
	description := ""

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a timespan",
		Example: `
granular span add sprint 42 --start=2026-08-24 --end=2026-09-04 --project=work
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a timespan description")
			}
			description = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				if co.Project != "" {
					projects = append(projects, co.Project)
				}
				s := add.Timespan{
					Repo:        env.repo,
					IDs:         env.ids,
					Config:      env.config,
					Description: description,
					Projects:    projects,
					Tags:        co.Tags,
					Color:       co.Color,
					Start:       wo.Start,
					End:         wo.End,
				}
				return s.Do(ctx)
			})
		},
	}

	options.AddCreateArgs(cmd, co)
	options.AddTimespanArgs(cmd, wo)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addSpanList(parent *cobra.Command) {
	lo := &options.ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List timespans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := get.List{
					Repo:           env.repo,
					IDs:            env.ids,
					Config:         env.config,
					Kind:           view.ViewTimespan,
					Name:           "timespans",
					Columns:        lo.Columns,
					Sort:           lo.Sort,
					IncludeDeleted: lo.IncludeDeleted,
					NoHeader:       lo.NoHeader,
					NoColor:        lo.NoColor,
					NoWrap:         lo.NoWrap,
				}
				return s.Do(ctx)
			})
		},
	}

	options.AddListArgs(cmd, lo)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}
