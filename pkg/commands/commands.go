package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/granular/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "granular",
		Short: base.Wrap80("Granular task, time, and knowledge tracking on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addTask(topLevel)
	addEvent(topLevel)
	addAudit(topLevel)
	addSpan(topLevel)
	addNote(topLevel)
	addLog(topLevel)
	addTracker(topLevel)
	addEntry(topLevel)
	addContext(topLevel)
	addView(topLevel)
	addIDs(topLevel)
	addVersion(topLevel)
}
