package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/granular/pkg/commands/options"
	"tableflip.dev/granular/pkg/entity"
	"tableflip.dev/granular/pkg/runner/add"
	"tableflip.dev/granular/pkg/runner/complete"
	"tableflip.dev/granular/pkg/runner/get"
	"tableflip.dev/granular/pkg/runner/strike"
	"tableflip.dev/granular/pkg/view"
)

func addTask(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTaskAdd(cmd)
	addTaskList(cmd)
	addTaskComplete(cmd)
	addTaskCancel(cmd)
	addTaskDelete(cmd)

	topLevel.AddCommand(cmd)
}

func addTaskAdd(parent *cobra.Command) {
	co := &options.CreateOptions{}
	so := &options.ScheduleOptions{}
	description := ""

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Example: `
granular task add write the quarterly report --project=work --due=friday
granular task add water the plants -t home --scheduled=tomorrow
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a task description")
			}
			description = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := add.Task{
					Repo:        env.repo,
					IDs:         env.ids,
					Config:      env.config,
					Description: description,
					Project:     co.Project,
					Tags:        co.Tags,
					Color:       co.Color,
					Priority:    so.Priority,
					Estimate:    so.Estimate,
					Scheduled:   so.Scheduled,
					Due:         so.Due,
					Timespan:    so.Timespan,
				}
				return s.Do(ctx)
			})
		},
	}

	options.AddCreateArgs(cmd, co)
	options.AddScheduleArgs(cmd, so)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addTaskList(parent *cobra.Command) {
	lo := &options.ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Example: `
granular task list
granular task list --sort="priority,desc created" --columns=id,state,description,due
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := get.List{
					Repo:           env.repo,
					IDs:            env.ids,
					Config:         env.config,
					Kind:           view.ViewTask,
					Name:           "tasks",
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

func addTaskComplete(parent *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a task completed",
		Example: `
granular task complete 3
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires a task id")
			}
			return io.ParseID(args[0])
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := complete.Complete{Repo: env.repo, IDs: env.ids, Config: env.config, ID: io.ID}
				return s.Do(ctx)
			})
		},
	}

	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addTaskCancel(parent *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Mark a task cancelled",
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires a task id")
			}
			return io.ParseID(args[0])
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := strike.Cancel{Repo: env.repo, IDs: env.ids, Config: env.config, ID: io.ID}
				return s.Do(ctx)
			})
		},
	}

	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addTaskDelete(parent *cobra.Command) {
	io := &options.IDOptions{}
	hard := false

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires a task id")
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
					Kind:   entity.TypeTask,
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
