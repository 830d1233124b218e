// Package track manages trackers and their entries.
package track

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"tableflip.dev/granular/pkg/entity"
	"tableflip.dev/granular/pkg/idmap"
	"tableflip.dev/granular/pkg/printers"
	"tableflip.dev/granular/pkg/service"
	"tableflip.dev/granular/pkg/store"
	"tableflip.dev/granular/pkg/timeutil"
	"tableflip.dev/granular/pkg/view"
)

// Add creates a tracker.
type Add struct {
	Repo   *store.Repository
	IDs    *idmap.Map
	Config store.Config

	Name        string
	Description string
	Frequency   string
	Value       string
	Unit        string
	ScaleMin    int
	ScaleMax    int
	Options     []string
	Project     string
	Tags        []string
	Color       string
}

func (n *Add) Do(ctx context.Context) error {
	freq := entity.EntryFrequency(n.Frequency)
	switch freq {
	case entity.FrequencyIntraDay, entity.FrequencyDaily, entity.FrequencyWeekly,
		entity.FrequencyMonthly, entity.FrequencyQuarterly:
	default:
		return fmt.Errorf("unknown frequency %q", n.Frequency)
	}
	valueType := entity.ValueType(n.Value)
	switch valueType {
	case entity.ValueCheckin, entity.ValueQuantitative, entity.ValueMultiSelect, entity.ValuePips:
	default:
		return fmt.Errorf("unknown value type %q", n.Value)
	}
	if valueType == entity.ValueMultiSelect && len(n.Options) == 0 && n.ScaleMax == 0 {
		return errors.New("a multi_select tracker needs --option values or a --scale-min/--scale-max range")
	}

	t := entity.NewTracker(n.Name, freq, valueType)
	t.Description = n.Description
	t.Unit = n.Unit
	if n.ScaleMax != 0 || n.ScaleMin != 0 {
		lo, hi := n.ScaleMin, n.ScaleMax
		t.ScaleMin, t.ScaleMax = &lo, &hi
	}
	t.Options = n.Options
	t.Project = n.Project
	t.Tags = n.Tags
	t.Color = n.Color
	if err := n.Repo.Put(ctx, t); err != nil {
		return err
	}

	id, err := n.IDs.Associate(entity.TypeTracker, t.ID)
	if err != nil {
		return err
	}
	fmt.Printf("tracker %d added: %s (%s, %s)\n", id, t.Name, t.EntryType, t.ValueType)
	return nil
}

// Heatmap renders the per-tracker activity heatmap, one row per live
// tracker over the trailing window.
type Heatmap struct {
	Repo   *store.Repository
	IDs    *idmap.Map
	Config store.Config

	Days int
}

func (n *Heatmap) Do(ctx context.Context) error {
	trackers, err := n.Repo.Trackers(ctx)
	if err != nil {
		return err
	}
	entries, err := n.Repo.Entries(ctx)
	if err != nil {
		return err
	}
	active, err := n.Repo.ActiveContext(ctx)
	if err != nil {
		return err
	}

	// Display ids are assigned here so entry commands can reference
	// trackers straight from the listing.
	for _, t := range trackers {
		if !t.IsDeleted() {
			if _, err := n.IDs.Associate(entity.TypeTracker, t.ID); err != nil {
				return err
			}
		}
	}

	pp := &printers.PrettyPrint{ShowHeader: n.Config.ShowHeader()}
	name := ""
	if active != nil {
		name = active.Name
	}
	pp.Header(name, "trackers")
	view.TrackerHeatmap(pp, trackers, entries, time.Now(), n.Days, 0, n.Config.UseColor())
	return nil
}

// Entry records a data point for a tracker.
type Entry struct {
	Repo   *store.Repository
	IDs    *idmap.Map
	Config store.Config

	Tracker int
	Value   string
	At      string
}

func (n *Entry) Do(ctx context.Context) error {
	realID, err := n.IDs.RealID(entity.TypeTracker, n.Tracker)
	if err != nil {
		return err
	}
	e, err := n.Repo.Get(ctx, entity.TypeTracker, realID)
	if err != nil {
		return err
	}
	tracker := e.(*entity.Tracker)
	if tracker.Archived != nil {
		return fmt.Errorf("tracker %q is archived", tracker.Name)
	}

	at := time.Now()
	if n.At != "" {
		if at, _, err = timeutil.ResolveDateToken(n.At, time.Now()); err != nil {
			return err
		}
	}

	value := parseValue(n.Value)
	if err := service.ValidateEntryValue(tracker, value); err != nil {
		return err
	}
	existing, err := n.Repo.Entries(ctx)
	if err != nil {
		return err
	}
	if err := service.ValidateEntryAllowed(tracker, at, existing); err != nil {
		return err
	}

	entry := entity.NewEntry(tracker.ID, entity.Timestamp{Time: at.UTC()})
	entry.Value = value
	entry.Project = tracker.Project
	entry.Tags = tracker.Tags
	entry.Color = tracker.Color
	if err := n.Repo.Put(ctx, entry); err != nil {
		return err
	}

	fmt.Printf("recorded %s%s for %s\n", displayValue(tracker, value), unitSuffix(tracker), tracker.Name)
	return nil
}

// parseValue reads the raw flag into an entry value: empty means checkin,
// a number means a numeric value, anything else a multi-select option.
func parseValue(raw string) *entity.EntryValue {
	if raw == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return &entity.EntryValue{Number: &f}
	}
	return &entity.EntryValue{Option: raw}
}

func displayValue(tracker *entity.Tracker, value *entity.EntryValue) string {
	if value == nil {
		return "a checkin"
	}
	if value.Number != nil {
		f := *value.Number
		if f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return value.Option
}

func unitSuffix(tracker *entity.Tracker) string {
	if tracker.Unit == "" {
		return ""
	}
	return " " + tracker.Unit
}
