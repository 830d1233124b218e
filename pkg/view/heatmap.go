package view

import (
	"context"
	"strings"
	"time"

	"tableflip.dev/granular/pkg/entity"
	"tableflip.dev/granular/pkg/glyph"
	"tableflip.dev/granular/pkg/printers"
	"tableflip.dev/granular/pkg/query"
	"tableflip.dev/granular/pkg/timeutil"
)

const defaultHeatmapDays = 14

func (c *Composer) runTasksHeatmapView(ctx context.Context, cv *CompoundView, sv *SubView, active *entity.Context) error {
	tasksAll, err := c.Repo.Tasks(ctx)
	if err != nil {
		return err
	}
	auditsAll, err := c.Repo.TimeAudits(ctx)
	if err != nil {
		return err
	}

	req := c.request(sv, active)
	tasks, err := query.Run(tasksAll, req, c.Now)
	if err != nil {
		return err
	}
	audits, err := query.Run(auditsAll, req, c.Now)
	if err != nil {
		return err
	}

	start, end, err := c.heatmapWindow(sv)
	if err != nil {
		return err
	}

	leftWidth := intOr(sv.LeftColumnWidth, defaultLeftColumnWidth)
	tl := newTimeline(start, end, sv.Granularity.orDefault(), leftWidth)
	useColor := c.useColor(sv)

	pp := c.printer(sv)
	pp.Header(contextName(active), cv.Name)
	pp.Line(tl.rangeLine(useColor))
	if month := tl.monthLine(useColor); month != "" {
		pp.Line(month)
	}
	pp.Line(tl.headerLine(c.Now, useColor))
	pp.Line(tl.separatorLine(useColor))

	// One row per requested project and tag; an unsliced view gets one
	// combined activity row.
	type rowSpec struct {
		label  string
		color  string
		tasks  []*entity.Task
		audits []*entity.TimeAudit
	}
	var rows []rowSpec
	for _, project := range sv.Projects {
		var pt []*entity.Task
		for _, t := range tasks {
			if t.Project == project {
				pt = append(pt, t)
			}
		}
		var pa []*entity.TimeAudit
		for _, a := range audits {
			if a.Project == project {
				pa = append(pa, a)
			}
		}
		rows = append(rows, rowSpec{project, "cyan", pt, pa})
	}
	for _, tag := range sv.Tags {
		var tt []*entity.Task
		for _, t := range tasks {
			if containsString(t.Tags, tag) {
				tt = append(tt, t)
			}
		}
		var ta []*entity.TimeAudit
		for _, a := range audits {
			if containsString(a.Tags, tag) {
				ta = append(ta, a)
			}
		}
		rows = append(rows, rowSpec{tag, "magenta", tt, ta})
	}
	if len(rows) == 0 {
		rows = append(rows, rowSpec{"Tasks Activity", "cyan", tasks, audits})
	}

	for _, row := range rows {
		counts := activityCounts(tl, row.tasks, row.audits)
		left := tl.leftColumn("    " + row.label)
		pp.Line(colorSeg(left, row.color, useColor) +
			tl.heatmapCells(counts, row.color, c.Now, useColor, intensityGlyph))
	}
	pp.NewLine()
	return nil
}

// heatmapWindow resolves the date range: explicit start/end win, then a
// days count back from today, then the default fortnight.
func (c *Composer) heatmapWindow(sv *SubView) (time.Time, time.Time, error) {
	var start, end time.Time
	if sv.Start != "" {
		at, _, err := timeutil.ResolveDateToken(sv.Start, c.Now)
		if err != nil {
			return start, end, err
		}
		start = at
	}
	if sv.End != "" {
		at, _, err := timeutil.ResolveDateToken(sv.End, c.Now)
		if err != nil {
			return start, end, err
		}
		end = at
	}
	days := intOr(sv.Days, defaultHeatmapDays)
	if end.IsZero() {
		end = timeutil.StartOfDay(c.Now)
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -(days - 1))
	}
	return start, end, nil
}

// activityCounts tallies completed tasks and started time audits per
// slot.
func activityCounts(tl timeline, tasks []*entity.Task, audits []*entity.TimeAudit) []int {
	counts := make([]int, len(tl.slots))
	for i := range tl.slots {
		slot, slotEnd := tl.slots[i], tl.slotEnd(i)
		for _, t := range tasks {
			if t.Completed != nil && within(t.Completed.Local(), slot, slotEnd) {
				counts[i]++
			}
		}
		for _, a := range audits {
			if a.Start != nil && within(a.Start.Local(), slot, slotEnd) {
				counts[i]++
			}
		}
	}
	return counts
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func intensityGlyph(count int) string {
	return glyph.Intensity(count)
}

// heatmapCells renders one glyph per slot: future slots always show the
// dimmed placeholder, past slots show the intensity for their count.
func (tl timeline) heatmapCells(counts []int, style string, now time.Time, useColor bool, symbol func(int) string) string {
	var b strings.Builder
	prevLabeled := false
	for i := range tl.slots {
		w := tl.widths[i]
		if tl.labeled[i] && prevLabeled {
			b.WriteString(" ")
			w--
		}
		var cell string
		if tl.slots[i].After(now) {
			cell = glyph.HeatmapFuture
			if useColor {
				cell = glyph.Dim(cell)
			}
		} else {
			cell = symbol(counts[i])
			if cell != " " {
				cell = colorSeg(cell, style, useColor)
			}
		}
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", w-1))
		prevLabeled = tl.labeled[i]
	}
	return b.String()
}

// TrackerHeatmap prints one heatmap row per tracker over the trailing
// window, newest slot last. Checkin trackers mark slots with a plain
// check glyph; the rest scale by recorded value.
func TrackerHeatmap(pp *printers.PrettyPrint, trackers []*entity.Tracker, entries []*entity.Entry, now time.Time, days int, leftWidth int, useColor bool) {
	if days <= 0 {
		days = defaultHeatmapDays
	}
	if leftWidth <= 0 {
		leftWidth = defaultLeftColumnWidth
	}
	end := timeutil.StartOfDay(now)
	tl := newTimeline(end.AddDate(0, 0, -(days-1)), end, GranularityDay, leftWidth)

	pp.Line(tl.rangeLine(useColor))
	if month := tl.monthLine(useColor); month != "" {
		pp.Line(month)
	}
	pp.Line(tl.headerLine(now, useColor))
	pp.Line(tl.separatorLine(useColor))

	for _, tracker := range trackers {
		if tracker.IsDeleted() || tracker.Archived != nil {
			continue
		}
		counts := trackerCounts(tl, tracker, entries)
		symbol := intensityGlyph
		if tracker.ValueType == entity.ValueCheckin {
			symbol = func(count int) string {
				if count > 0 {
					return glyph.HeatmapCheckin
				}
				return " "
			}
		}
		left := tl.leftColumn("    " + tracker.Name)
		pp.Line(colorSeg(left, tracker.Color, useColor) +
			tl.heatmapCells(counts, tracker.Color, now, useColor, symbol))
	}
	pp.NewLine()
}

// trackerCounts scores each slot for one tracker. Pips and multi-select
// scale entries sum their recorded values so heavier days read darker;
// other types count entries.
func trackerCounts(tl timeline, tracker *entity.Tracker, entries []*entity.Entry) []int {
	counts := make([]int, len(tl.slots))
	for i := range tl.slots {
		slot, slotEnd := tl.slots[i], tl.slotEnd(i)
		for _, e := range entries {
			if e.IsDeleted() || e.TrackerID != tracker.ID {
				continue
			}
			if !within(e.Timestamp.Local(), slot, slotEnd) {
				continue
			}
			switch tracker.ValueType {
			case entity.ValuePips, entity.ValueMultiSelect:
				if n, ok := e.Number(); ok {
					counts[i] += int(n)
				} else {
					counts[i]++
				}
			case entity.ValueCheckin:
				counts[i]++
			default:
				counts[i] += 4
			}
		}
	}
	return counts
}
