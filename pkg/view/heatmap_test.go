package view

import (
	"strings"
	"testing"
	"time"
)

func TestHeatmapCellsScaleAndFutureMask(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	tl := newTimeline(start, start.AddDate(0, 0, 6), GranularityDay, 0)
	if len(tl.slots) != 7 {
		t.Fatalf("got %d slots, want 7", len(tl.slots))
	}

	counts := []int{1, 2, 3, 4, 9, 1, 1}
	now := tl.slots[3]
	cells := tl.heatmapCells(counts, "cyan", now, false, intensityGlyph)

	got := strings.Join(strings.Fields(cells), "")
	if got != ".oO#---" {
		t.Fatalf("got %q, want .oO#--- (intensity up to now, masked after)", got)
	}
}

func TestHeatmapCellsZeroCountIsBlank(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	tl := newTimeline(start, start.AddDate(0, 0, 2), GranularityDay, 0)

	cells := tl.heatmapCells([]int{1, 0, 1}, "cyan", tl.slots[2], false, intensityGlyph)
	got := strings.Join(strings.Fields(cells), "")
	if got != ".." {
		t.Fatalf("got %q, want the quiet middle day blank", got)
	}
}
