// Package glyph maps entity states and heatmap intensities to the single
// characters the views print.
package glyph

import "fmt"

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	dimCode       = 2
	underlineCode = 4
	strikeCode    = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Dim(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, dimCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

// Task state symbols.
const (
	TaskOpen         = " "
	TaskCompleted    = "X"
	TaskCancelled    = "/"
	TaskNotCompleted = "~"
	TaskCloned       = ">"
)

// Heatmap symbols. Future slots always render the placeholder, dimmed,
// regardless of intensity; checkin trackers render a plain mark.
const (
	HeatmapFuture  = "-"
	HeatmapCheckin = "X"
)

// Intensity maps an activity count to its heatmap glyph on the fixed
// five-level scale.
func Intensity(count int) string {
	switch {
	case count <= 0:
		return " "
	case count == 1:
		return "."
	case count == 2:
		return "o"
	case count == 3:
		return "O"
	default:
		return "#"
	}
}
