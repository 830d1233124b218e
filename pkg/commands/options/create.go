// Package options defines the shared flag mixins for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// CreateOptions carries the metadata flags common to every entity
// creation command.
type CreateOptions struct {
	Project string
	Tags    []string
	Color   string
}

// AddCreateArgs wires the shared creation flags on the provided command.
func AddCreateArgs(cmd *cobra.Command, o *CreateOptions) {
	cmd.Flags().StringVarP(&o.Project, "project", "p", "",
		"Assign the new item to a project.")
	cmd.Flags().StringSliceVarP(&o.Tags, "tag", "t", nil,
		"Tag the new item. Repeatable.")
	cmd.Flags().StringVar(&o.Color, "color", "",
		"Render the item in this color (red, green, yellow, blue, magenta, cyan).")
}

// ScheduleOptions carries the task scheduling flags.
type ScheduleOptions struct {
	Scheduled string
	Due       string
	Priority  int
	Estimate  string
	Timespan  int
}

func AddScheduleArgs(cmd *cobra.Command, o *ScheduleOptions) {
	cmd.Flags().StringVar(&o.Scheduled, "scheduled", "",
		`Schedule the task for a date, example: --scheduled=tomorrow.`)
	cmd.Flags().StringVar(&o.Due, "due", "",
		`Set a due date, example: --due=2026-03-01.`)
	cmd.Flags().IntVar(&o.Priority, "priority", 0,
		"Set a priority, 1 is highest.")
	cmd.Flags().StringVar(&o.Estimate, "estimate", "",
		`Estimate the effort, example: --estimate=2h30m or --estimate=1d.`)
	cmd.Flags().IntVar(&o.Timespan, "timespan", 0,
		"Attach the task to a timespan by its display id.")
}

// WhenOptions carries the start and end flags for events and timespans.
type WhenOptions struct {
	Start    string
	End      string
	AllDay   bool
	Location string
}

func AddEventArgs(cmd *cobra.Command, o *WhenOptions) {
	cmd.Flags().StringVar(&o.Start, "start", "",
		`When the event starts, example: --start="2026-02-28" or --start=14:00.`)
	cmd.Flags().StringVar(&o.End, "end", "",
		"When the event ends.")
	cmd.Flags().BoolVar(&o.AllDay, "all-day", false,
		"Mark the event as an all-day event.")
	cmd.Flags().StringVar(&o.Location, "location", "",
		"Where the event happens.")
}

func AddTimespanArgs(cmd *cobra.Command, o *WhenOptions) {
	cmd.Flags().StringVar(&o.Start, "start", "",
		"When the timespan begins.")
	cmd.Flags().StringVar(&o.End, "end", "",
		"When the timespan ends.")
}

// RefOptions selects the entity a note or log attaches to, by display id.
// At most one reference may be set.
type RefOptions struct {
	Task  int
	Audit int
	Event int
}

func AddRefArgs(cmd *cobra.Command, o *RefOptions) {
	cmd.Flags().IntVar(&o.Task, "task", 0,
		"Attach to a task by its display id.")
	cmd.Flags().IntVar(&o.Audit, "audit", 0,
		"Attach to a time audit by its display id.")
	cmd.Flags().IntVar(&o.Event, "event", 0,
		"Attach to an event by its display id.")
}
