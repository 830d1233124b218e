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

func addLog(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Manage log lines",
		Long:  "Logs are short timestamped lines, lighter weight than notes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addLogAdd(cmd)
	addLogList(cmd)

	topLevel.AddCommand(cmd)
}

func addLogAdd(parent *cobra.Command) {
	co := &options.CreateOptions{}
	ro := &options.RefOptions{}
	text := ""

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a log line",
		Example: `
granular log add deployed v2.3.1 to staging
granular log add --task 7 waiting on review
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires log text")
			}
			text = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := add.Log{
					Repo:    env.repo,
					IDs:     env.ids,
					Config:  env.config,
					Text:    text,
					Project: co.Project,
					Tags:    co.Tags,
					Color:   co.Color,
					Task:    ro.Task,
					Audit:   ro.Audit,
					Event:   ro.Event,
				}
				return s.Do(ctx)
			})
		},
	}

	options.AddCreateArgs(cmd, co)
	options.AddRefArgs(cmd, ro)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addLogList(parent *cobra.Command) {
	lo := &options.ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List log lines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := get.List{
					Repo:           env.repo,
					IDs:            env.ids,
					Config:         env.config,
					Kind:           view.ViewLog,
					Name:           "logs",
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
