package options

import (
	"github.com/spf13/cobra"
)

// ContextOptions carries the flags describing a new working context.
type ContextOptions struct {
	Filter      string
	AutoTags    []string
	AutoProject string
	Activate    bool
}

func AddContextArgs(cmd *cobra.Command, o *ContextOptions) {
	cmd.Flags().StringVarP(&o.Filter, "filter", "f", "",
		`Filter expression in YAML or JSON, example: --filter='{filter_type: project, filter: home}'.`)
	cmd.Flags().StringSliceVar(&o.AutoTags, "auto-tag", nil,
		"Tag stamped onto items created while this context is active. Repeatable.")
	cmd.Flags().StringVar(&o.AutoProject, "auto-project", "",
		"Project stamped onto items created while this context is active.")
	cmd.Flags().BoolVar(&o.Activate, "activate", false,
		"Activate the context immediately.")
}
