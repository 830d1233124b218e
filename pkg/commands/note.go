package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/granular/pkg/commands/options"
	"tableflip.dev/granular/pkg/runner/add"
	"tableflip.dev/granular/pkg/runner/get"
)

func addNote(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addNoteAdd(cmd)
	addNoteList(cmd)

	topLevel.AddCommand(cmd)
}

func addNoteAdd(parent *cobra.Command) {
	co := &options.CreateOptions{}
	ro := &options.RefOptions{}
	text := ""

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a note",
		Example: `
granular note add remember to rotate the api keys
granular note add --task 3 findings from the incident review
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires note text")
			}
			text = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := add.Note{
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

func addNoteList(parent *cobra.Command) {
	includeDeleted := false
	noHeader := false

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(ctx context.Context, env *environment) error {
				s := get.Notes{
					Repo:           env.repo,
					IDs:            env.ids,
					Config:         env.config,
					IncludeDeleted: includeDeleted,
					NoHeader:       noHeader,
				}
				return s.Do(ctx)
			})
		},
	}

	cmd.Flags().BoolVar(&includeDeleted, "include-deleted", false,
		"Keep soft-deleted notes in the listing.")
	cmd.Flags().BoolVar(&noHeader, "no-header", false,
		"Suppress the banner above the table.")
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}
