package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/granular/pkg/commands/options"
	"tableflip.dev/granular/pkg/runner/track"
)

func addEntry(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Record tracker entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEntryAdd(cmd)

	topLevel.AddCommand(cmd)
}

func addEntryAdd(parent *cobra.Command) {
	io := &options.IDOptions{}
	eo := &options.EntryOptions{}

	cmd := &cobra.Command{
		Use:   "add <tracker-id>",
		Short: "Record an entry for a tracker",
		Example: `
granular entry add 1
granular entry add 2 --value 5.2
granular entry add 3 --value 4 --at yesterday
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires a tracker id, see: granular tracker list")
			}
			return io.ParseID(args[0])
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := track.Entry{
					Repo:    env.repo,
					IDs:     env.ids,
					Config:  env.config,
					Tracker: io.ID,
					Value:   eo.Value,
					At:      eo.At,
				}
				return s.Do(ctx)
			})
		},
	}

	options.AddEntryArgs(cmd, eo)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}
