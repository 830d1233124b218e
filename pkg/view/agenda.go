package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/granular/pkg/entity"
	"tableflip.dev/granular/pkg/glyph"
	"tableflip.dev/granular/pkg/printers"
	"tableflip.dev/granular/pkg/query"
	"tableflip.dev/granular/pkg/timeutil"
)

// agendaData is everything one day-by-day render reads. Collections are
// pre-filtered through the pipeline before the day loop starts.
type agendaData struct {
	tasks   []*entity.Task
	audits  []*entity.TimeAudit
	events  []*entity.Event
	spans   []*entity.Timespan
	logs    []*entity.Log
	notes   []*entity.Note
	entries []*entity.Entry

	trackers map[string]*entity.Tracker
}

// agendaOptions resolves the sub-view's show_* switches to their
// defaults: the planning layers on, the chronology layers off.
type agendaOptions struct {
	showScheduled  bool
	showDue        bool
	showEvents     bool
	showTimespans  bool
	showLogs       bool
	showNotes      bool
	showTimeAudits bool
	showEntries    bool
	limitNoteLines int
	useColor       bool
}

func agendaOptionsFor(sv *SubView, useColor bool) agendaOptions {
	return agendaOptions{
		showScheduled:  boolOr(sv.ShowScheduledTasks, true),
		showDue:        boolOr(sv.ShowDueTasks, true),
		showEvents:     boolOr(sv.ShowEvents, true),
		showTimespans:  boolOr(sv.ShowTimespans, true),
		showLogs:       boolOr(sv.ShowLogs, false),
		showNotes:      boolOr(sv.ShowNotes, false),
		showTimeAudits: boolOr(sv.ShowTimeAudits, false),
		showEntries:    boolOr(sv.ShowEntries, false),
		limitNoteLines: intOr(sv.LimitNoteLines, 0),
		useColor:       useColor,
	}
}

func (c *Composer) runAgendaView(ctx context.Context, cv *CompoundView, sv *SubView, active *entity.Context) error {
	data, err := c.agendaData(ctx, sv, active)
	if err != nil {
		return err
	}

	start := timeutil.StartOfDay(c.Now)
	if sv.Start != "" {
		at, _, err := timeutil.ResolveDateToken(sv.Start, c.Now)
		if err != nil {
			return err
		}
		start = timeutil.StartOfDay(at)
	}
	numDays := intOr(sv.NumDays, 7)
	opts := agendaOptionsFor(sv, c.useColor(sv))

	pp := c.printer(sv)
	pp.Header(contextName(active), cv.Name)
	for offset := 0; offset < numDays; offset++ {
		day := start.AddDate(0, 0, offset)
		rendered := c.renderAgendaDay(pp, day, data, opts)
		// Quiet days keep their place in the run unless the view asks
		// for active days only.
		if !rendered && !sv.OnlyActiveDays {
			pp.Line(dayHeader(day, c.Now, opts.useColor))
		}
	}
	pp.NewLine()
	return nil
}

// agendaData runs every collection the agenda reads through the pipeline.
// The sub-view filter applies to the planning layers; logs, notes, and
// entries only honor the context filter since their schemas rarely share
// the filtered properties.
func (c *Composer) agendaData(ctx context.Context, sv *SubView, active *entity.Context) (*agendaData, error) {
	req := c.request(sv, active)
	contextOnly := query.Request{Context: req.Context, IncludeDeleted: req.IncludeDeleted}

	tasks, err := c.Repo.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	audits, err := c.Repo.TimeAudits(ctx)
	if err != nil {
		return nil, err
	}
	events, err := c.Repo.Events(ctx)
	if err != nil {
		return nil, err
	}
	spans, err := c.Repo.Timespans(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := c.Repo.Logs(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := c.Repo.Notes(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := c.Repo.Entries(ctx)
	if err != nil {
		return nil, err
	}
	trackers, err := c.Repo.Trackers(ctx)
	if err != nil {
		return nil, err
	}

	data := &agendaData{trackers: map[string]*entity.Tracker{}}
	if data.tasks, err = query.Run(tasks, req, c.Now); err != nil {
		return nil, err
	}
	if data.audits, err = query.Run(audits, req, c.Now); err != nil {
		return nil, err
	}
	if data.events, err = query.Run(events, req, c.Now); err != nil {
		return nil, err
	}
	if data.spans, err = query.Run(spans, req, c.Now); err != nil {
		return nil, err
	}
	if data.logs, err = query.Run(logs, contextOnly, c.Now); err != nil {
		return nil, err
	}
	if data.notes, err = query.Run(notes, contextOnly, c.Now); err != nil {
		return nil, err
	}
	if data.entries, err = query.Run(entries, contextOnly, c.Now); err != nil {
		return nil, err
	}
	for _, t := range trackers {
		data.trackers[t.ID] = t
	}
	return data, nil
}

// renderAgendaDay prints one day and reports whether it had any content.
func (c *Composer) renderAgendaDay(pp *printers.PrettyPrint, day time.Time, data *agendaData, opts agendaOptions) bool {
	var events []*entity.Event
	if opts.showEvents {
		events = eventsForDay(data.events, day)
	}
	tasks := tasksForDay(data.tasks, day, opts.showScheduled, opts.showDue)
	var spans []*entity.Timespan
	if opts.showTimespans {
		spans = timespansForDay(data.spans, day)
	}
	var logs []*entity.Log
	if opts.showLogs {
		logs = logsForDay(data.logs, day)
	}
	var notes []*entity.Note
	if opts.showNotes {
		notes = notesForDay(data.notes, day)
	}
	var audits []*entity.TimeAudit
	if opts.showTimeAudits {
		audits = auditsForDay(data.audits, day)
	}
	var entries []*entity.Entry
	if opts.showEntries {
		entries = entriesForDay(data.entries, day)
	}

	if len(events) == 0 && len(tasks) == 0 && len(spans) == 0 &&
		len(logs) == 0 && len(notes) == 0 && len(audits) == 0 && len(entries) == 0 {
		return false
	}

	pp.Line(dayHeader(day, c.Now, opts.useColor))
	for _, span := range spans {
		pp.Line(c.timespanLine(span, opts))
	}
	for _, task := range tasks {
		pp.Line(c.taskLine(task, data.tasks, day, opts))
	}
	for _, event := range events {
		pp.Line(c.eventLine(event, opts))
	}
	for _, entry := range entries {
		pp.Line(c.entryLine(entry, data.trackers[entry.TrackerID], opts))
	}
	for _, line := range c.chronologyLines(logs, notes, audits, data, opts) {
		pp.Line(line)
	}
	return true
}

// dayHeader styles the date line: today stands out, weekends get their
// own tint.
func dayHeader(day, now time.Time, useColor bool) string {
	label := "• " + day.Format("2006-01-02 Mon")
	if !useColor {
		return "\n" + label
	}
	switch {
	case timeutil.SameDay(day, now):
		return "\n" + glyph.Bold(printers.Colorize("cyan", label, true))
	case day.Weekday() == time.Saturday || day.Weekday() == time.Sunday:
		return "\n" + glyph.Bold(printers.Colorize("yellow", label, true))
	default:
		return "\n" + glyph.Bold(label)
	}
}

func withinDay(t, day time.Time) bool {
	start := timeutil.StartOfDay(day)
	return !t.Before(start) && t.Before(start.AddDate(0, 0, 1))
}

// tasksForDay keeps tasks scheduled or due on the given day.
func tasksForDay(tasks []*entity.Task, day time.Time, scheduled, due bool) []*entity.Task {
	var out []*entity.Task
	for _, t := range tasks {
		if scheduled && t.Scheduled != nil && withinDay(t.Scheduled.Time, day) {
			out = append(out, t)
			continue
		}
		if due && t.Due != nil && withinDay(t.Due.Time, day) {
			out = append(out, t)
		}
	}
	return out
}

// eventsForDay keeps events overlapping the day, all-day events first and
// timed events in start order.
func eventsForDay(events []*entity.Event, day time.Time) []*entity.Event {
	start := timeutil.StartOfDay(day)
	end := start.AddDate(0, 0, 1)

	var allDay, timed []*entity.Event
	for _, e := range events {
		if e.AllDay {
			if timeutil.SameDay(e.Start.Time, day) {
				allDay = append(allDay, e)
			}
			continue
		}
		eventEnd := e.Start.Add(time.Hour)
		if e.End != nil {
			eventEnd = e.End.Time
		}
		if e.Start.Before(end) && !eventEnd.Before(start) {
			timed = append(timed, e)
		}
	}
	for i := 1; i < len(timed); i++ {
		for j := i; j > 0 && timed[j].Start.Before(timed[j-1].Start.Time); j-- {
			timed[j], timed[j-1] = timed[j-1], timed[j]
		}
	}
	return append(allDay, timed...)
}

// timespansForDay keeps spans active on the day: started by then, and
// either still open or not yet ended.
func timespansForDay(spans []*entity.Timespan, day time.Time) []*entity.Timespan {
	start := timeutil.StartOfDay(day)
	end := start.AddDate(0, 0, 1)

	var out []*entity.Timespan
	for _, s := range spans {
		if s.Start == nil {
			continue
		}
		if !s.Start.Before(end) {
			continue
		}
		if s.End != nil && s.End.Before(start) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func auditsForDay(audits []*entity.TimeAudit, day time.Time) []*entity.TimeAudit {
	start := timeutil.StartOfDay(day)
	end := start.AddDate(0, 0, 1)

	var out []*entity.TimeAudit
	for _, a := range audits {
		if a.Start == nil {
			continue
		}
		if !a.Start.Before(end) {
			continue
		}
		if a.End != nil && a.End.Before(start) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func logsForDay(logs []*entity.Log, day time.Time) []*entity.Log {
	var out []*entity.Log
	for _, l := range logs {
		if l.Timestamp != nil && withinDay(l.Timestamp.Time, day) {
			out = append(out, l)
		}
	}
	return out
}

func notesForDay(notes []*entity.Note, day time.Time) []*entity.Note {
	var out []*entity.Note
	for _, n := range notes {
		if n.Timestamp != nil && withinDay(n.Timestamp.Time, day) {
			out = append(out, n)
		}
	}
	return out
}

func entriesForDay(entries []*entity.Entry, day time.Time) []*entity.Entry {
	var out []*entity.Entry
	for _, e := range entries {
		if withinDay(e.Timestamp.Time, day) {
			out = append(out, e)
		}
	}
	return out
}

func (c *Composer) timespanLine(span *entity.Timespan, opts agendaOptions) string {
	id, _ := c.synthetic(entity.TypeTimespan, span.ID)
	dateRange := "???-"
	if span.Start != nil {
		dateRange = span.Start.Local().Format("Jan 02") + "-"
	}
	if span.End != nil {
		dateRange += span.End.Local().Format("Jan 02")
	}
	body := fmt.Sprintf("%s %s", id, orPlaceholder(span.Description))
	if !opts.useColor {
		return fmt.Sprintf("  ➜ %s %s", dateRange, body)
	}
	return "  " + printers.Colorize(span.Color, "➜ ", true) +
		glyph.Dim(dateRange+" ") + printers.Colorize(span.Color, body, true)
}

func (c *Composer) taskLine(task *entity.Task, all []*entity.Task, day time.Time, opts agendaOptions) string {
	id, _ := c.synthetic(entity.TypeTask, task.ID)
	state := taskState(task, all)
	body := fmt.Sprintf("%s %s %s", state, id, orPlaceholder(task.Description))

	var label string
	if opts.showScheduled && task.Scheduled != nil && withinDay(task.Scheduled.Time, day) {
		label = " (scheduled)"
	}
	if opts.showDue && task.Due != nil && withinDay(task.Due.Time, day) {
		label += " (due)"
	}

	if !opts.useColor {
		return "  " + body + label
	}
	style := task.Color
	if task.Completed != nil {
		style = "grey"
	}
	return "  " + printers.Colorize(style, body, true) + glyph.Dim(label)
}

func (c *Composer) eventLine(event *entity.Event, opts agendaOptions) string {
	id, _ := c.synthetic(entity.TypeEvent, event.ID)
	title := event.Title
	if title == "" {
		title = "[no title]"
	}

	var line string
	if event.AllDay {
		line = fmt.Sprintf("■ %s %s (all day)", id, title)
		if opts.useColor {
			return "  " + printers.Colorize(event.Color, fmt.Sprintf("■ %s %s", id, title), true) +
				glyph.Dim(" (all day)")
		}
	} else {
		start := event.Start.Local()
		end := start.Add(time.Hour)
		if event.End != nil {
			end = event.End.Local()
		}
		window := fmt.Sprintf("%s-%s", start.Format("15:04"), end.Format("15:04"))
		line = fmt.Sprintf("■ %s %s %s", window, id, title)
		if opts.useColor {
			return "  " + printers.Colorize(event.Color, "■ ", true) +
				glyph.Dim(window+" ") +
				printers.Colorize(event.Color, fmt.Sprintf("%s %s", id, title), true)
		}
	}
	return "  " + line
}

func (c *Composer) entryLine(entry *entity.Entry, tracker *entity.Tracker, opts agendaOptions) string {
	if tracker == nil {
		return ""
	}
	id, _ := c.synthetic(entity.TypeEntry, entry.ID)
	meta := fmt.Sprintf("• E  [%s] %s: ", entry.Timestamp.Local().Format("15:04"), tracker.Name)
	value := entryValueLabel(entry, tracker)

	if !opts.useColor {
		return "  " + meta + id + " " + value
	}
	return "  " + glyph.Dim(meta) + printers.Colorize(tracker.Color, id+" "+value, true)
}

// entryValueLabel formats the recorded value per the tracker's value
// type: a check, a quantity with unit, a pip row, or the chosen option.
func entryValueLabel(entry *entity.Entry, tracker *entity.Tracker) string {
	switch tracker.ValueType {
	case entity.ValueCheckin:
		return "✓"
	case entity.ValueQuantitative:
		n, ok := entry.Number()
		if !ok {
			return ""
		}
		if n == float64(int(n)) {
			return fmt.Sprintf("%d%s", int(n), tracker.Unit)
		}
		return fmt.Sprintf("%.1f%s", n, tracker.Unit)
	case entity.ValueMultiSelect:
		if entry.Value == nil {
			return ""
		}
		if entry.Value.Option != "" {
			return entry.Value.Option
		}
		if n, ok := entry.Number(); ok {
			return fmt.Sprintf("%d", int(n))
		}
		return ""
	default: // pips
		n, ok := entry.Number()
		if !ok {
			return "●"
		}
		count := int(n)
		pips := strings.Repeat("●", min(count, 5))
		if count > 5 {
			pips += fmt.Sprintf("+%d", count-5)
		}
		return pips
	}
}

// chronologyLines interleaves the day's logs, notes, and time audits in
// timestamp order.
func (c *Composer) chronologyLines(logs []*entity.Log, notes []*entity.Note, audits []*entity.TimeAudit, data *agendaData, opts agendaOptions) []string {
	type item struct {
		at   time.Time
		line string
	}
	items := make([]item, 0, len(logs)+len(notes)+len(audits))
	for _, l := range logs {
		items = append(items, item{l.Timestamp.Time, c.logLine(l, data, opts)})
	}
	for _, n := range notes {
		items = append(items, item{n.Timestamp.Time, c.noteLine(n, data, opts)})
	}
	for _, a := range audits {
		items = append(items, item{a.Start.Time, c.auditLine(a, opts)})
	}
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j].at.Before(items[j-1].at); j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, it.line)
	}
	return lines
}

// referenceLabel names the entity a log or note points at, prefixed with
// its type letter and synthetic id, truncated and padded to a fixed width
// so the chronology columns line up.
func (c *Composer) referenceLabel(refType, refID string, data *agendaData) string {
	var label string
	switch entity.Type(refType) {
	case entity.TypeTask:
		for _, t := range data.tasks {
			if t.ID == refID {
				id, _ := c.synthetic(entity.TypeTask, refID)
				label = strings.TrimSpace("t:" + id + " " + t.Description)
			}
		}
	case entity.TypeEvent:
		for _, e := range data.events {
			if e.ID == refID {
				id, _ := c.synthetic(entity.TypeEvent, refID)
				label = strings.TrimSpace("e:" + id + " " + e.Title)
			}
		}
	case entity.TypeTimeAudit:
		for _, a := range data.audits {
			if a.ID == refID {
				id, _ := c.synthetic(entity.TypeTimeAudit, refID)
				label = strings.TrimSpace("a:" + id + " " + a.Description)
			}
		}
	}
	if len(label) > 30 {
		label = label[:27] + "..."
	}
	return fmt.Sprintf("%-30s", label)
}

func (c *Composer) logLine(l *entity.Log, data *agendaData, opts agendaOptions) string {
	id, _ := c.synthetic(entity.TypeLog, l.ID)
	stamp := "--:--"
	if l.Timestamp != nil {
		stamp = l.Timestamp.Local().Format("15:04")
	}
	meta := fmt.Sprintf("• L  [%s] %s: ", stamp, c.referenceLabel(l.ReferenceType, l.ReferenceID, data))
	text := firstLines(l.Text, 0)

	if !opts.useColor {
		return "  " + meta + id + " " + text
	}
	return "  " + glyph.Dim(meta) + printers.Colorize(l.Color, id+" "+text, true)
}

func (c *Composer) noteLine(n *entity.Note, data *agendaData, opts agendaOptions) string {
	id, _ := c.synthetic(entity.TypeNote, n.ID)
	stamp := "--:--"
	if n.Timestamp != nil {
		stamp = n.Timestamp.Local().Format("15:04")
	}
	meta := fmt.Sprintf("• N  [%s] %s: ", stamp, c.referenceLabel(n.ReferenceType, n.ReferenceID, data))
	text := firstLines(n.Text, opts.limitNoteLines)

	if !opts.useColor {
		return "  " + meta + id + " " + text
	}
	return "  " + glyph.Dim(meta) + id + " " + text
}

func (c *Composer) auditLine(a *entity.TimeAudit, opts agendaOptions) string {
	id, _ := c.synthetic(entity.TypeTimeAudit, a.ID)
	start := a.Start.Local().Format("15:04")
	end := "     "
	var elapsed time.Duration
	if a.End != nil {
		end = a.End.Local().Format("15:04")
		elapsed = a.Elapsed()
	} else {
		elapsed = c.Now.Sub(a.Start.Time)
	}
	meta := fmt.Sprintf("• TA [%s-%s] %s ", start, end, timeutil.FormatClock(elapsed))
	body := id + " " + orPlaceholder(a.Description)

	if !opts.useColor {
		return "  " + meta + body
	}
	return "  " + glyph.Dim(meta) + printers.Colorize(a.Color, body, true)
}

// firstLines flattens multi-line text for a single agenda row, keeping at
// most limit lines (0 keeps them all) joined with an indent marker.
func firstLines(text string, limit int) string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	if limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}
	return strings.Join(lines, "\n"+strings.Repeat(" ", 8))
}

func orPlaceholder(description string) string {
	if description == "" {
		return "[no description]"
	}
	return description
}
