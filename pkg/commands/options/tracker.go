package options

import (
	"github.com/spf13/cobra"
)

// TrackerOptions carries the flags describing a new tracker.
type TrackerOptions struct {
	Description string
	Frequency   string
	Value       string
	Unit        string
	ScaleMin    int
	ScaleMax    int
	Options     []string
}

func AddTrackerArgs(cmd *cobra.Command, o *TrackerOptions) {
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"Describe what the tracker measures.")
	cmd.Flags().StringVarP(&o.Frequency, "frequency", "f", "daily",
		"How often entries are allowed: intra_day, daily, weekly, monthly, quarterly.")
	cmd.Flags().StringVarP(&o.Value, "value-type", "v", "checkin",
		"What each entry records: checkin, quantitative, multi_select, pips.")
	cmd.Flags().StringVarP(&o.Unit, "unit", "u", "",
		"Unit label for quantitative values, example: km.")
	cmd.Flags().IntVar(&o.ScaleMin, "scale-min", 0,
		"Lower bound of a multi_select scale.")
	cmd.Flags().IntVar(&o.ScaleMax, "scale-max", 0,
		"Upper bound of a multi_select scale.")
	cmd.Flags().StringSliceVar(&o.Options, "option", nil,
		"Allowed multi_select option. Repeatable.")
}

// EntryOptions carries the flags for recording a tracker entry.
type EntryOptions struct {
	Value string
	At    string
}

func AddEntryArgs(cmd *cobra.Command, o *EntryOptions) {
	cmd.Flags().StringVar(&o.Value, "value", "",
		"The value to record. Omit for checkin trackers.")
	cmd.Flags().StringVar(&o.At, "at", "",
		"Backdate the entry, example: --at=yesterday.")
}
