package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/granular/pkg/commands/options"
	"tableflip.dev/granular/pkg/runner/audit"
	"tableflip.dev/granular/pkg/runner/get"
	"tableflip.dev/granular/pkg/view"
)

func addAudit(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Track time with start/stop audits",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addAuditStart(cmd)
	addAuditStop(cmd)
	addAuditList(cmd)

	topLevel.AddCommand(cmd)
}

func addAuditStart(parent *cobra.Command) {
	co := &options.CreateOptions{}
	task := 0
	description := ""

	cmd := &cobra.Command{
		Use:   "start [description]",
		Short: "Start a time audit",
		Example: `
granular audit start reviewing the design doc
granular audit start --task 3
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			description = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := audit.Start{
					Repo:        env.repo,
					IDs:         env.ids,
					Config:      env.config,
					Description: description,
					Project:     co.Project,
					Tags:        co.Tags,
					Color:       co.Color,
					Task:        task,
				}
				return s.Do(ctx)
			})
		},
	}

	cmd.Flags().IntVar(&task, "task", 0, "Attach the audit to a task by its display id.")
	options.AddCreateArgs(cmd, co)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addAuditStop(parent *cobra.Command) {
	at := ""

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running time audit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := audit.Stop{Repo: env.repo, IDs: env.ids, Config: env.config, At: at}
				return s.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&at, "at", "", `Stop at an earlier instant, example: --at=17:30.`)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addAuditList(parent *cobra.Command) {
	lo := &options.ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List time audits",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := get.List{
					Repo:           env.repo,
					IDs:            env.ids,
					Config:         env.config,
					Kind:           view.ViewTimeAudit,
					Name:           "time audits",
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
