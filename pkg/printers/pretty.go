// Package printers renders projected rows to the terminal. It knows
// nothing about entities: it receives already-projected string cells.
package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

// PrettyPrint draws titled tables and headers the way the rest of the
// tool expects them.
type PrettyPrint struct {
	ShowHeader bool
}

// Header prints the application banner with the active context and view
// name.
func (pp *PrettyPrint) Header(activeContext, viewName string) {
	if !pp.ShowHeader {
		return
	}
	app := color.New(color.FgYellow, color.Bold)
	sub := color.New(color.FgCyan)
	ctx := color.New(color.FgMagenta, color.Faint)

	fmt.Println("")
	_, _ = app.Fprintln(color.Output, " granular")
	if viewName != "" {
		_, _ = sub.Fprintf(color.Output, " %s\n", viewName)
	}
	if activeContext != "" {
		_, _ = ctx.Fprintf(color.Output, " %s\n", activeContext)
	}
}

// Title prints a bold underlined section title.
func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(color.Output, title)
}

// TitleWithCount prints a section title with a faint row count.
func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)
	_, _ = t.Fprint(color.Output, title)
	switch count {
	case 1:
		_, _ = c.Fprintln(color.Output, " - 1 row")
	default:
		_, _ = c.Fprintf(color.Output, " - %d rows\n", count)
	}
}

// Table draws one table of projected cells. An empty row set prints a
// faint placeholder instead of headers over nothing.
func (pp *PrettyPrint) Table(columns []string, rows [][]string, noWrap bool) {
	if len(rows) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(color.Output, " none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	if !noWrap {
		tbl.MaxColWidth = 60
	}

	if len(columns) > 0 {
		hdr := make([]interface{}, len(columns))
		bold := color.New(color.Bold)
		for i, c := range columns {
			hdr[i] = bold.Sprint(strings.ToUpper(c))
		}
		tbl.AddRow(hdr...)
	}
	for _, row := range rows {
		cells := make([]interface{}, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		tbl.AddRow(cells...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Line prints a single preformatted line.
func (pp *PrettyPrint) Line(s string) {
	_, _ = fmt.Fprintln(color.Output, s)
}

// NewLine prints a blank spacer line.
func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

// Colorize wraps a cell in the named color when enabled. Unknown color
// names pass through unchanged.
func Colorize(name, cell string, enabled bool) string {
	if !enabled || name == "" || cell == "" {
		return cell
	}
	attr, ok := colorNames[name]
	if !ok {
		return cell
	}
	return color.New(attr).Sprint(cell)
}

var colorNames = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
	"grey":    color.FgHiBlack,
	"gray":    color.FgHiBlack,
}
