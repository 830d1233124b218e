package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/granular/pkg/commands/options"
	"tableflip.dev/granular/pkg/runner/views"
	"tableflip.dev/granular/pkg/store"
)

func addView(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "view <name>",
		Short: "Render a named compound view",
		Long: "Compound views are defined in views.yaml inside the data directory. " +
			"Each view composes tables, agendas, gantt charts, heatmaps, and stories.",
		Example: `
granular view today
granular view week
granular view list
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires a view name, see: granular view list")
			}
			return nil
		},
		ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return viewCompletions(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := views.Show{Repo: env.repo, IDs: env.ids, Config: env.config, Name: args[0]}
				return s.Do(ctx)
			})
		},
	}

	addViewList(cmd)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addViewList(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the defined compound views",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := views.List{Repo: env.repo, Config: env.config}
				return s.Do(ctx)
			})
		},
	}

	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func viewCompletions() []string {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil
	}
	return views.Names(cfg.BasePath())
}
