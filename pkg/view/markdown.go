package view

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

// runMarkdownView renders the sub-view's inline markdown content to the
// terminal. When no renderer can be built the raw text still prints.
func (c *Composer) runMarkdownView(sv *SubView) error {
	if sv.Markdown == "" {
		return nil
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(100)}
	if c.useColor(sv) {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		fmt.Fprintln(os.Stdout, sv.Markdown)
		return nil
	}
	out, err := renderer.Render(sv.Markdown)
	if err != nil {
		fmt.Fprintln(os.Stdout, sv.Markdown)
		return nil
	}
	fmt.Fprint(os.Stdout, out)
	return nil
}
