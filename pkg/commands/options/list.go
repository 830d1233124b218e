package options

import (
	"github.com/spf13/cobra"
)

// ListOptions carries the flags shared by every tabular list command.
type ListOptions struct {
	Columns        []string
	Sort           []string
	IncludeDeleted bool
	NoHeader       bool
	NoColor        bool
	NoWrap         bool
}

// AddListArgs wires the list flags on the provided command.
func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().StringSliceVarP(&o.Columns, "columns", "c", nil,
		"Columns to show, in order. Defaults per entity type.")
	cmd.Flags().StringSliceVarP(&o.Sort, "sort", "s", nil,
		`Sort keys, example: --sort="priority,desc created".`)
	cmd.Flags().BoolVar(&o.IncludeDeleted, "include-deleted", false,
		"Keep soft-deleted items in the listing.")
	cmd.Flags().BoolVar(&o.NoHeader, "no-header", false,
		"Suppress the banner above the table.")
	cmd.Flags().BoolVar(&o.NoColor, "no-color", false,
		"Disable colored cells.")
	cmd.Flags().BoolVar(&o.NoWrap, "no-wrap", false,
		"Truncate wide cells instead of wrapping.")
}
