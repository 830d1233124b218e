package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/granular/pkg/commands/options"
	"tableflip.dev/granular/pkg/entity"
	"tableflip.dev/granular/pkg/runner/add"
	"tableflip.dev/granular/pkg/runner/get"
	"tableflip.dev/granular/pkg/runner/strike"
	"tableflip.dev/granular/pkg/view"
)

func addEvent(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage calendar events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEventAdd(cmd)
	addEventList(cmd)
	addEventDelete(cmd)

	topLevel.AddCommand(cmd)
}

func addEventAdd(parent *cobra.Command) {
	co := &options.CreateOptions{}
	wo := &options.WhenOptions{}
	title := ""

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an event",
		Example: `
granular event add dentist --start="2026-09-02" --all-day
granular event add standup --start=09:30 --end=09:45 --location="room 2"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires an event title")
			}
			title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := add.Event{
					Repo:     env.repo,
					IDs:      env.ids,
					Config:   env.config,
					Title:    title,
					Project:  co.Project,
					Tags:     co.Tags,
					Color:    co.Color,
					Start:    wo.Start,
					End:      wo.End,
					AllDay:   wo.AllDay,
					Location: wo.Location,
				}
				return s.Do(ctx)
			})
		},
	}

	options.AddCreateArgs(cmd, co)
	options.AddEventArgs(cmd, wo)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addEventList(parent *cobra.Command) {
	lo := &options.ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := get.List{
					Repo:           env.repo,
					IDs:            env.ids,
					Config:         env.config,
					Kind:           view.ViewEvent,
					Name:           "events",
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

func addEventDelete(parent *cobra.Command) {
	io := &options.IDOptions{}
	hard := false

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event",
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires an event id")
			}
			return io.ParseID(args[0])
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := strike.Delete{
					Repo:   env.repo,
					IDs:    env.ids,
					Config: env.config,
					Kind:   entity.TypeEvent,
					ID:     io.ID,
					Hard:   hard,
				}
				return s.Do(ctx)
			})
		},
	}

	cmd.Flags().BoolVar(&hard, "hard", false, "Erase the record instead of soft-deleting it.")
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}
