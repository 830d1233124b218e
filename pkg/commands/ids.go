package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/granular/pkg/commands/options"
	"tableflip.dev/granular/pkg/runner/ids"
)

func addIDs(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ids",
		Short: "Manage display ids",
		Long: "Display ids are the small numbers shown in listings. They map to " +
			"the real record identifiers and stay stable until cleared.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addIDsClear(cmd)

	topLevel.AddCommand(cmd)
}

func addIDsClear(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear every display id",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := ids.Clear{IDs: env.ids}
				return s.Do(ctx)
			})
		},
	}

	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}
