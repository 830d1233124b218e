// Package service holds construction-time domain rules that sit above the
// store but below the views.
package service

import (
	"fmt"
	"time"

	"tableflip.dev/granular/pkg/entity"
	"tableflip.dev/granular/pkg/timeutil"
)

// ValidationError reports a domain rule violation. The message names the
// specific rule so the user can act on it without a debugger.
type ValidationError struct {
	Rule string
}

func (e *ValidationError) Error() string {
	return e.Rule
}

func validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Rule: fmt.Sprintf(format, args...)}
}

// PeriodBoundaries returns the [start, end) calendar period containing the
// instant for an entry frequency. Weeks start on Monday.
func PeriodBoundaries(freq entity.EntryFrequency, at time.Time) (time.Time, time.Time) {
	day := timeutil.StartOfDay(at.Local())
	switch freq {
	case entity.FrequencyWeekly:
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	case entity.FrequencyMonthly:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return start, start.AddDate(0, 1, 0)
	case entity.FrequencyQuarterly:
		quarterMonth := time.Month((int(day.Month())-1)/3*3 + 1)
		start := time.Date(day.Year(), quarterMonth, 1, 0, 0, 0, 0, day.Location())
		return start, start.AddDate(0, 3, 0)
	default: // daily and intra_day use the calendar day
		return day, day.AddDate(0, 0, 1)
	}
}

// ValidateEntryAllowed enforces the tracker's entry frequency: intra_day
// trackers accept unlimited entries, every other frequency allows one
// entry per calendar period.
func ValidateEntryAllowed(tracker *entity.Tracker, at time.Time, existing []*entity.Entry) error {
	if tracker.EntryType == entity.FrequencyIntraDay {
		return nil
	}
	start, end := PeriodBoundaries(tracker.EntryType, at)
	for _, e := range existing {
		if e.IsDeleted() || e.TrackerID != tracker.ID {
			continue
		}
		ts := e.Timestamp.Local()
		if !ts.Before(start) && ts.Before(end) {
			period := map[entity.EntryFrequency]string{
				entity.FrequencyDaily:     "day",
				entity.FrequencyWeekly:    "week",
				entity.FrequencyMonthly:   "month",
				entity.FrequencyQuarterly: "quarter",
			}[tracker.EntryType]
			return validationf(
				"an entry already exists for this %s: tracker %q allows one entry per %s",
				period, tracker.Name, period)
		}
	}
	return nil
}

// ValidateEntryValue enforces the tracker's value type on a new entry
// value.
func ValidateEntryValue(tracker *entity.Tracker, value *entity.EntryValue) error {
	switch tracker.ValueType {
	case entity.ValueCheckin:
		if value != nil {
			return validationf("checkin tracker %q does not take a value", tracker.Name)
		}
	case entity.ValueQuantitative:
		if value == nil || value.Number == nil {
			return validationf("quantitative tracker %q requires a numeric value", tracker.Name)
		}
	case entity.ValuePips:
		if value == nil || value.Number == nil {
			return validationf("pips tracker %q requires an integer value", tracker.Name)
		}
		n := *value.Number
		if n != float64(int64(n)) || n < 1 {
			return validationf("pips value must be a positive integer, got %v", n)
		}
	case entity.ValueMultiSelect:
		if value == nil {
			return validationf("multi-select tracker %q requires a value", tracker.Name)
		}
		if tracker.ScaleMin != nil && tracker.ScaleMax != nil {
			if value.Number == nil {
				return validationf("scale tracker %q requires an integer value", tracker.Name)
			}
			n := *value.Number
			if n != float64(int64(n)) || int(n) < *tracker.ScaleMin || int(n) > *tracker.ScaleMax {
				return validationf("value %v outside scale %d..%d for tracker %q",
					n, *tracker.ScaleMin, *tracker.ScaleMax, tracker.Name)
			}
			return nil
		}
		if len(tracker.Options) > 0 {
			for _, opt := range tracker.Options {
				if value.Option == opt {
					return nil
				}
			}
			return validationf("value %q is not one of tracker %q options %v",
				value.Option, tracker.Name, tracker.Options)
		}
		return validationf("multi-select tracker %q has neither a scale nor options", tracker.Name)
	default:
		return validationf("tracker %q has unknown value type %q", tracker.Name, tracker.ValueType)
	}
	return nil
}
