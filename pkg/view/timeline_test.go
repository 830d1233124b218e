package view

import (
	"strings"
	"testing"
	"time"
)

func TestSlotStartWeekIsMonday(t *testing.T) {
	// 2026-03-12 is a Thursday.
	at := time.Date(2026, 3, 12, 15, 0, 0, 0, time.Local)
	got := slotStart(at, GranularityWeek)
	if got.Weekday() != time.Monday {
		t.Fatalf("got %v, want a Monday", got.Weekday())
	}
	if got.Day() != 9 {
		t.Fatalf("got day %d, want the 9th", got.Day())
	}
}

func TestSlotStartMonthIsFirst(t *testing.T) {
	at := time.Date(2026, 3, 12, 15, 0, 0, 0, time.Local)
	got := slotStart(at, GranularityMonth)
	if got.Day() != 1 || got.Month() != time.March {
		t.Fatalf("got %v, want March 1", got)
	}
}

func TestNewTimelineSlotCount(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 0, 9)
	tl := newTimeline(start, end, GranularityDay, 10)
	if len(tl.slots) != 10 {
		t.Fatalf("got %d slots, want 10", len(tl.slots))
	}
	if !tl.slots[0].Equal(start) {
		t.Fatalf("first slot %v, want %v", tl.slots[0], start)
	}
}

func TestTimelineLabelsEverySlotWhenNarrow(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	tl := newTimeline(start, start.AddDate(0, 0, 6), GranularityDay, 10)
	for i := range tl.slots {
		if !tl.labeled[i] {
			t.Fatalf("slot %d should be labeled in a narrow window", i)
		}
	}
}

func TestTimelineElidesLabelsWhenWide(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	tl := newTimeline(start, start.AddDate(0, 0, 199), GranularityDay, 40)
	if len(tl.labeled) >= len(tl.slots) {
		t.Fatal("a 200 day window should drop some labels")
	}
	if !tl.labeled[0] || !tl.labeled[len(tl.slots)-1] {
		t.Fatal("first and last slots keep their labels")
	}
}

func TestTimelineQuietSlotsAreOneColumn(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	tl := newTimeline(start, start.AddDate(0, 0, 199), GranularityDay, 40)
	for i := range tl.slots {
		if !tl.labeled[i] && tl.widths[i] != 1 {
			t.Fatalf("quiet slot %d has width %d, want 1", i, tl.widths[i])
		}
	}
}

func TestLeftColumn(t *testing.T) {
	tl := timeline{leftWidth: 10}
	if got := tl.leftColumn("short"); got != "short     " {
		t.Fatalf("got %q, want padded to 10", got)
	}
	long := tl.leftColumn("a very long project name")
	if len(long) != 10 || !strings.HasSuffix(long, "...") {
		t.Fatalf("got %q, want 10 chars ending in ...", long)
	}
}

func TestNewTimelineClampsNarrowLeftColumn(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	tl := newTimeline(start, start.AddDate(0, 0, 29), GranularityDay, 2)
	if tl.leftWidth != minLeftColumnWidth {
		t.Fatalf("left width: got %d, want %d", tl.leftWidth, minLeftColumnWidth)
	}
	got := tl.leftColumn("    Tasks Activity")
	if len([]rune(got)) != tl.leftWidth {
		t.Fatalf("got %q (%d runes), want %d", got, len([]rune(got)), tl.leftWidth)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("got %q, want an ellipsized label", got)
	}
}

func TestLeftColumnTruncatesByRune(t *testing.T) {
	tl := timeline{leftWidth: 8}
	got := tl.leftColumn("héllo wörld project")
	if n := len([]rune(got)); n != 8 {
		t.Fatalf("got %q (%d runes), want 8", got, n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("got %q, want an ellipsized label", got)
	}
	padded := tl.leftColumn("héllo")
	if n := len([]rune(padded)); n != 8 {
		t.Fatalf("padded: got %q (%d runes), want 8", padded, n)
	}
}

func TestLeftColumnTinyWidthDoesNotPanic(t *testing.T) {
	tl := timeline{leftWidth: 2}
	if got := tl.leftColumn("Tasks Activity"); got != "Ta" {
		t.Fatalf("got %q, want %q", got, "Ta")
	}
}
