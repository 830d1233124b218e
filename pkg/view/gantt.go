package view

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"tableflip.dev/granular/pkg/entity"
	"tableflip.dev/granular/pkg/glyph"
	"tableflip.dev/granular/pkg/printers"
	"tableflip.dev/granular/pkg/query"
	"tableflip.dev/granular/pkg/timeutil"
)

// Gantt bar glyphs.
const (
	barStart    = "◄"
	barBody     = "━"
	barEnd      = "►"
	barPoint    = "●"
	eventMark  = "■"
	dueMark    = "●"
	schedMark  = "○"
	taskIndent = 4
)

func (c *Composer) runGanttView(ctx context.Context, cv *CompoundView, sv *SubView, active *entity.Context) error {
	spansAll, err := c.Repo.Timespans(ctx)
	if err != nil {
		return err
	}
	eventsAll, err := c.Repo.Events(ctx)
	if err != nil {
		return err
	}
	tasksAll, err := c.Repo.Tasks(ctx)
	if err != nil {
		return err
	}

	req := c.request(sv, active)
	spans, err := query.Run(spansAll, req, c.Now)
	if err != nil {
		return err
	}
	events, err := query.Run(eventsAll, req, c.Now)
	if err != nil {
		return err
	}
	tasks, err := query.Run(tasksAll, req, c.Now)
	if err != nil {
		return err
	}

	showTimespans := boolOr(sv.ShowTimespans, true)
	showEvents := boolOr(sv.ShowEvents, true)
	showTasks := boolOr(sv.ShowTasks, false)

	var validSpans []*entity.Timespan
	if showTimespans {
		for _, s := range spans {
			if s.Start != nil {
				validSpans = append(validSpans, s)
			}
		}
	}
	var validEvents []*entity.Event
	if showEvents {
		validEvents = events
	}

	pp := c.printer(sv)
	pp.Header(contextName(active), cv.Name)
	useColor := c.useColor(sv)

	start, end, ok, err := c.ganttWindow(sv, validSpans, validEvents)
	if err != nil {
		return err
	}
	if !ok {
		line := "no timespans or events to display"
		if useColor {
			line = glyph.Dim(line)
		}
		pp.NewLine()
		pp.Line(line)
		pp.NewLine()
		return nil
	}

	leftWidth := intOr(sv.LeftColumnWidth, defaultLeftColumnWidth)
	tl := newTimeline(start, end, sv.Granularity.orDefault(), leftWidth)

	pp.Line(tl.rangeLine(useColor))
	if month := tl.monthLine(useColor); month != "" {
		pp.Line(month)
	}
	pp.Line(tl.headerLine(c.Now, useColor))
	pp.Line(tl.separatorLine(useColor))

	windowEnd := tl.slotEnd(len(tl.slots) - 1)

	visibleEvents := make([]*entity.Event, 0, len(validEvents))
	for _, e := range validEvents {
		at := e.Start.Local()
		if !at.Before(tl.slots[0]) && at.Before(windowEnd) {
			visibleEvents = append(visibleEvents, e)
		}
	}
	sort.SliceStable(visibleEvents, func(i, j int) bool {
		return visibleEvents[i].Start.Before(visibleEvents[j].Start.Time)
	})
	for _, e := range visibleEvents {
		pp.Line(c.eventRow(tl, e, useColor))
	}

	if showTasks {
		for _, t := range standaloneTasks(tasks, tl.slots[0], windowEnd) {
			pp.Line(c.taskRow(tl, t, tasks, 0, useColor))
		}
	}

	visibleSpans := make([]*entity.Timespan, 0, len(validSpans))
	for _, s := range validSpans {
		if !s.Start.Before(windowEnd) {
			continue
		}
		if s.End != nil && s.End.Before(tl.slots[0]) {
			continue
		}
		visibleSpans = append(visibleSpans, s)
	}
	sort.SliceStable(visibleSpans, func(i, j int) bool {
		return visibleSpans[i].Start.Before(visibleSpans[j].Start.Time)
	})
	for _, s := range visibleSpans {
		pp.Line(c.timespanRow(tl, s, useColor))
		if showTasks {
			for _, t := range tasks {
				if t.TimespanID == s.ID {
					pp.Line(c.taskRow(tl, t, tasks, taskIndent, useColor))
				}
			}
		}
	}
	pp.NewLine()
	return nil
}

// ganttWindow resolves the timeline bounds: explicit start/end tokens
// win, otherwise the earliest and latest instants across the visible
// timespans and events.
func (c *Composer) ganttWindow(sv *SubView, spans []*entity.Timespan, events []*entity.Event) (time.Time, time.Time, bool, error) {
	var start, end time.Time
	if sv.Start != "" {
		at, _, err := timeutil.ResolveDateToken(sv.Start, c.Now)
		if err != nil {
			return start, end, false, err
		}
		start = at
	}
	if sv.End != "" {
		at, _, err := timeutil.ResolveDateToken(sv.End, c.Now)
		if err != nil {
			return start, end, false, err
		}
		end = at
	}

	if start.IsZero() {
		for _, s := range spans {
			if start.IsZero() || s.Start.Before(start) {
				start = s.Start.Time
			}
		}
		for _, e := range events {
			if start.IsZero() || e.Start.Before(start) {
				start = e.Start.Time
			}
		}
		if start.IsZero() {
			return start, end, false, nil
		}
	}
	if end.IsZero() {
		for _, s := range spans {
			if s.End != nil && s.End.After(end) {
				end = s.End.Time
			}
			if s.Start.After(end) {
				end = s.Start.Time
			}
		}
		for _, e := range events {
			if e.End != nil && e.End.After(end) {
				end = e.End.Time
			}
			if e.Start.After(end) {
				end = e.Start.Time
			}
		}
		if end.IsZero() {
			end = start
		}
	}
	return start, end, true, nil
}

// standaloneTasks keeps tasks with a due or scheduled date inside the
// window that are not attached to any timespan, ordered by that date.
func standaloneTasks(tasks []*entity.Task, start, end time.Time) []*entity.Task {
	anchor := func(t *entity.Task) *entity.Timestamp {
		if t.Due != nil {
			return t.Due
		}
		return t.Scheduled
	}
	var out []*entity.Task
	for _, t := range tasks {
		if t.TimespanID != "" {
			continue
		}
		at := anchor(t)
		if at == nil {
			continue
		}
		local := at.Local()
		if !local.Before(start) && local.Before(end) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return anchor(out[i]).Before(anchor(out[j]).Time)
	})
	return out
}

func (c *Composer) timespanRow(tl timeline, span *entity.Timespan, useColor bool) string {
	id, _ := c.synthetic(entity.TypeTimespan, span.ID)
	left := tl.leftColumn(fmt.Sprintf("%3s %s", id, orPlaceholder(span.Description)))

	spanStart := slotStart(span.Start.Time, tl.granularity)
	var spanEnd time.Time
	if span.End != nil {
		spanEnd = nextSlot(slotStart(span.End.Time, tl.granularity), tl.granularity)
	}

	var b strings.Builder
	prevLabeled := false
	for i := range tl.slots {
		slot := tl.slots[i]
		slotEnd := tl.slotEnd(i)
		w := tl.widths[i]

		overlaps := spanStart.Before(slotEnd) && (span.End == nil || spanEnd.After(slot))
		isStart := !spanStart.Before(slot) && spanStart.Before(slotEnd)
		isEnd := span.End != nil && spanEnd.After(slot) && !spanEnd.After(slotEnd)

		if tl.labeled[i] && prevLabeled {
			if overlaps && !isStart {
				b.WriteString(colorSeg(barBody, span.Color, useColor))
			} else {
				b.WriteString(" ")
			}
			w--
		}

		var seg string
		switch {
		case !overlaps:
			seg = strings.Repeat(" ", w)
		case isStart && isEnd:
			seg = strings.Repeat(barPoint, w)
		case isStart:
			seg = barStart + strings.Repeat(barBody, w-1)
		case isEnd:
			seg = strings.Repeat(barBody, w-1) + barEnd
		default:
			seg = strings.Repeat(barBody, w)
		}
		if overlaps {
			seg = colorSeg(seg, span.Color, useColor)
		}
		b.WriteString(seg)
		prevLabeled = tl.labeled[i]
	}
	return colorSeg(left, span.Color, useColor) + b.String()
}

func (c *Composer) eventRow(tl timeline, event *entity.Event, useColor bool) string {
	id, _ := c.synthetic(entity.TypeEvent, event.ID)
	title := event.Title
	if title == "" {
		title = orPlaceholder(event.Description)
	}
	left := tl.leftColumn(fmt.Sprintf("%3s %s", id, title))
	at := slotStart(event.Start.Time, tl.granularity)
	return colorSeg(left, event.Color, useColor) +
		tl.markerCells(at, eventMark, event.Color, useColor)
}

func (c *Composer) taskRow(tl timeline, task *entity.Task, all []*entity.Task, indent int, useColor bool) string {
	id, _ := c.synthetic(entity.TypeTask, task.ID)
	state := taskState(task, all)
	left := tl.leftColumn(fmt.Sprintf("%s[%s] %3s %s",
		strings.Repeat(" ", indent), state, id, orPlaceholder(task.Description)))

	style := task.Color
	if task.Completed != nil {
		style = "grey"
	}

	mark, anchor := schedMark, task.Scheduled
	if task.Due != nil {
		mark, anchor = dueMark, task.Due
	}
	cells := strings.Repeat(" ", tl.totalWidth())
	if anchor != nil {
		cells = tl.markerCells(slotStart(anchor.Time, tl.granularity), mark, style, useColor)
	}
	return colorSeg(left, style, useColor) + cells
}

// markerCells renders a single marker in the slot matching at and spaces
// everywhere else.
func (tl timeline) markerCells(at time.Time, mark, style string, useColor bool) string {
	var b strings.Builder
	prevLabeled := false
	for i := range tl.slots {
		w := tl.widths[i]
		if tl.labeled[i] && prevLabeled {
			b.WriteString(" ")
			w--
		}
		if tl.slots[i].Equal(at) {
			b.WriteString(colorSeg(mark, style, useColor))
			b.WriteString(strings.Repeat(" ", w-1))
		} else {
			b.WriteString(strings.Repeat(" ", w))
		}
		prevLabeled = tl.labeled[i]
	}
	return b.String()
}

func colorSeg(seg, name string, useColor bool) string {
	if !useColor {
		return seg
	}
	return printers.Colorize(name, seg, true)
}
