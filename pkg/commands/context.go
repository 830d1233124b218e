package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/granular/pkg/commands/options"
	"tableflip.dev/granular/pkg/runner/contexts"
)

func addContext(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Manage working contexts",
		Long: "A context narrows every view with its filter and stamps its " +
			"auto-added project and tags onto new items. At most one context is active.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addContextAdd(cmd)
	addContextList(cmd)
	addContextActivate(cmd)
	addContextClear(cmd)

	topLevel.AddCommand(cmd)
}

func addContextAdd(parent *cobra.Command) {
	co := &options.ContextOptions{}
	name := ""

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a context",
		Example: `
granular context add home --filter='{filter_type: project, filter: home}' --auto-project=home
granular context add deep-work --auto-tag=focus --activate
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a context name")
			}
			name = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := contexts.Add{
					Repo:        env.repo,
					IDs:         env.ids,
					Config:      env.config,
					Name:        name,
					Filter:      co.Filter,
					AutoTags:    co.AutoTags,
					AutoProject: co.AutoProject,
					Activate:    co.Activate,
				}
				return s.Do(ctx)
			})
		},
	}

	options.AddContextArgs(cmd, co)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addContextList(parent *cobra.Command) {
	includeDeleted := false

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contexts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := contexts.List{
					Repo:           env.repo,
					IDs:            env.ids,
					Config:         env.config,
					IncludeDeleted: includeDeleted,
				}
				return s.Do(ctx)
			})
		},
	}

	cmd.Flags().BoolVar(&includeDeleted, "include-deleted", false,
		"Keep soft-deleted contexts in the listing.")
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addContextActivate(parent *cobra.Command) {
	name := ""

	cmd := &cobra.Command{
		Use:   "activate <name>",
		Short: "Activate a context",
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a context name")
			}
			name = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := contexts.Activate{Repo: env.repo, IDs: env.ids, Config: env.config, Name: name}
				return s.Do(ctx)
			})
		},
	}

	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addContextClear(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Deactivate every context",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := contexts.Activate{Repo: env.repo, IDs: env.ids, Config: env.config}
				return s.Do(ctx)
			})
		},
	}

	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}
