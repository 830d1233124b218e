package service

import (
	"testing"
	"time"

	"tableflip.dev/granular/pkg/entity"
)

func floatp(f float64) *float64 { return &f }
func intp(n int) *int           { return &n }

func TestPeriodBoundariesWeeklyStartsMonday(t *testing.T) {
	// 2026-03-12 is a Thursday.
	at := time.Date(2026, 3, 12, 15, 0, 0, 0, time.Local)
	start, end := PeriodBoundaries(entity.FrequencyWeekly, at)
	if start.Weekday() != time.Monday {
		t.Fatalf("week starts %v, want Monday", start.Weekday())
	}
	if !end.Equal(start.AddDate(0, 0, 7)) {
		t.Fatalf("week end %v, want start+7d", end)
	}
	if at.Before(start) || !at.Before(end) {
		t.Fatal("instant should fall inside its own period")
	}
}

func TestPeriodBoundariesQuarter(t *testing.T) {
	at := time.Date(2026, 5, 20, 12, 0, 0, 0, time.Local)
	start, end := PeriodBoundaries(entity.FrequencyQuarterly, at)
	if start.Month() != time.April || start.Day() != 1 {
		t.Fatalf("quarter start %v, want April 1", start)
	}
	if end.Month() != time.July {
		t.Fatalf("quarter end %v, want July 1", end)
	}
}

func TestValidateEntryAllowedDaily(t *testing.T) {
	tracker := entity.NewTracker("meditation", entity.FrequencyDaily, entity.ValueCheckin)
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

	existing := []*entity.Entry{}
	if err := ValidateEntryAllowed(tracker, at, existing); err != nil {
		t.Fatalf("first entry of the day: %v", err)
	}

	first := entity.NewEntry(tracker.ID, entity.Timestamp{Time: at})
	existing = append(existing, first)
	if err := ValidateEntryAllowed(tracker, at.Add(2*time.Hour), existing); err == nil {
		t.Fatal("second entry the same day should be rejected")
	}
	if err := ValidateEntryAllowed(tracker, at.AddDate(0, 0, 1), existing); err != nil {
		t.Fatalf("next day: %v", err)
	}
}

func TestValidateEntryAllowedIgnoresDeletedAndForeign(t *testing.T) {
	tracker := entity.NewTracker("meditation", entity.FrequencyDaily, entity.ValueCheckin)
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

	deleted := entity.NewEntry(tracker.ID, entity.Timestamp{Time: at})
	now := entity.Now()
	deleted.Deleted = &now

	other := entity.NewEntry("other-tracker", entity.Timestamp{Time: at})

	if err := ValidateEntryAllowed(tracker, at, []*entity.Entry{deleted, other}); err != nil {
		t.Fatalf("deleted and foreign entries should not block: %v", err)
	}
}

func TestValidateEntryAllowedIntraDayUnlimited(t *testing.T) {
	tracker := entity.NewTracker("water", entity.FrequencyIntraDay, entity.ValueQuantitative)
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	existing := []*entity.Entry{
		entity.NewEntry(tracker.ID, entity.Timestamp{Time: at}),
		entity.NewEntry(tracker.ID, entity.Timestamp{Time: at.Add(time.Hour)}),
	}
	if err := ValidateEntryAllowed(tracker, at.Add(2*time.Hour), existing); err != nil {
		t.Fatalf("intra_day entries are unlimited: %v", err)
	}
}

func TestValidateEntryValueCheckin(t *testing.T) {
	tracker := entity.NewTracker("meditation", entity.FrequencyDaily, entity.ValueCheckin)
	if err := ValidateEntryValue(tracker, nil); err != nil {
		t.Fatalf("checkin without value: %v", err)
	}
	if err := ValidateEntryValue(tracker, &entity.EntryValue{Number: floatp(3)}); err == nil {
		t.Fatal("checkin should reject a value")
	}
}

func TestValidateEntryValueQuantitative(t *testing.T) {
	tracker := entity.NewTracker("running", entity.FrequencyIntraDay, entity.ValueQuantitative)
	if err := ValidateEntryValue(tracker, &entity.EntryValue{Number: floatp(5.2)}); err != nil {
		t.Fatalf("numeric value: %v", err)
	}
	if err := ValidateEntryValue(tracker, nil); err == nil {
		t.Fatal("quantitative needs a number")
	}
	if err := ValidateEntryValue(tracker, &entity.EntryValue{Option: "far"}); err == nil {
		t.Fatal("option is not a number")
	}
}

func TestValidateEntryValuePips(t *testing.T) {
	tracker := entity.NewTracker("pomodoros", entity.FrequencyDaily, entity.ValuePips)
	if err := ValidateEntryValue(tracker, &entity.EntryValue{Number: floatp(4)}); err != nil {
		t.Fatalf("whole pips: %v", err)
	}
	if err := ValidateEntryValue(tracker, &entity.EntryValue{Number: floatp(2.5)}); err == nil {
		t.Fatal("fractional pips should be rejected")
	}
	if err := ValidateEntryValue(tracker, &entity.EntryValue{Number: floatp(0)}); err == nil {
		t.Fatal("pips start at one")
	}
}

func TestValidateEntryValueScale(t *testing.T) {
	tracker := entity.NewTracker("mood", entity.FrequencyDaily, entity.ValueMultiSelect)
	tracker.ScaleMin, tracker.ScaleMax = intp(1), intp(5)

	if err := ValidateEntryValue(tracker, &entity.EntryValue{Number: floatp(3)}); err != nil {
		t.Fatalf("in-range scale value: %v", err)
	}
	if err := ValidateEntryValue(tracker, &entity.EntryValue{Number: floatp(6)}); err == nil {
		t.Fatal("out-of-range scale value should be rejected")
	}
}

func TestValidateEntryValueOptions(t *testing.T) {
	tracker := entity.NewTracker("weather", entity.FrequencyDaily, entity.ValueMultiSelect)
	tracker.Options = []string{"sunny", "cloudy", "rain"}

	if err := ValidateEntryValue(tracker, &entity.EntryValue{Option: "cloudy"}); err != nil {
		t.Fatalf("known option: %v", err)
	}
	if err := ValidateEntryValue(tracker, &entity.EntryValue{Option: "snow"}); err == nil {
		t.Fatal("unknown option should be rejected")
	}
}
