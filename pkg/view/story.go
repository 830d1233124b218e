package view

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/granular/pkg/entity"
	"tableflip.dev/granular/pkg/idmap"
	"tableflip.dev/granular/pkg/timeutil"
)

// storySet is one collected bundle of related entities. Multiple anchor
// kinds intersect their sets so the story narrows instead of widening.
type storySet struct {
	tasks   []*entity.Task
	audits  []*entity.TimeAudit
	events  []*entity.Event
	spans   []*entity.Timespan
	logs    []*entity.Log
	notes   []*entity.Note
	entries []*entity.Entry
}

func (s storySet) empty() bool {
	return len(s.tasks) == 0 && len(s.audits) == 0 && len(s.events) == 0 &&
		len(s.spans) == 0 && len(s.logs) == 0 && len(s.notes) == 0 && len(s.entries) == 0
}

// storyPool is every live entity the collector can draw from.
type storyPool struct {
	tasks    []*entity.Task
	audits   []*entity.TimeAudit
	events   []*entity.Event
	spans    []*entity.Timespan
	logs     []*entity.Log
	notes    []*entity.Note
	entries  []*entity.Entry
	trackers []*entity.Tracker
}

func (c *Composer) runStoryView(ctx context.Context, cv *CompoundView, sv *SubView, active *entity.Context) error {
	pool, err := c.storyPool(ctx, sv)
	if err != nil {
		return err
	}

	taskIDs, err := c.resolveAnchors(entity.TypeTask, sv.TaskIDs)
	if err != nil {
		return err
	}
	auditIDs, err := c.resolveAnchors(entity.TypeTimeAudit, sv.TimeAuditIDs)
	if err != nil {
		return err
	}
	eventIDs, err := c.resolveAnchors(entity.TypeEvent, sv.EventIDs)
	if err != nil {
		return err
	}

	var sets []storySet
	if len(taskIDs) > 0 {
		sets = append(sets, pool.collectTasks(taskIDs))
	}
	if len(auditIDs) > 0 {
		sets = append(sets, pool.collectTimeAudits(auditIDs))
	}
	if len(eventIDs) > 0 {
		sets = append(sets, pool.collectEvents(eventIDs))
	}
	if len(sv.Project) > 0 {
		sets = append(sets, pool.collectProjects(sv.Project))
	}
	if len(sv.Tag) > 0 {
		sets = append(sets, pool.collectTags(sv.Tag))
	}

	var story storySet
	if len(sets) > 0 {
		story = sets[0]
		for _, other := range sets[1:] {
			story = intersectSets(story, other)
		}
	}

	pp := c.printer(sv)
	pp.Header(contextName(active), c.storyTitle(sv, pool, story))

	if story.empty() {
		pp.NewLine()
		pp.Line("No related activity found.")
		pp.NewLine()
		return nil
	}

	start, end, err := c.storyWindow(sv, story)
	if err != nil {
		return err
	}

	data := &agendaData{
		tasks:    story.tasks,
		audits:   story.audits,
		events:   story.events,
		spans:    story.spans,
		logs:     story.logs,
		notes:    story.notes,
		entries:  story.entries,
		trackers: map[string]*entity.Tracker{},
	}
	for _, t := range pool.trackers {
		data.trackers[t.ID] = t
	}

	opts := agendaOptions{
		showScheduled:  true,
		showDue:        true,
		showEvents:     boolOr(sv.ShowEvents, true),
		showTimespans:  boolOr(sv.ShowTimespans, true),
		showLogs:       boolOr(sv.ShowLogs, true),
		showNotes:      boolOr(sv.ShowNotes, true),
		showTimeAudits: boolOr(sv.ShowTimeAudits, true),
		showEntries:    boolOr(sv.ShowEntries, true),
		limitNoteLines: intOr(sv.LimitNoteLines, 0),
		useColor:       c.useColor(sv),
	}

	rendered := false
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if c.renderAgendaDay(pp, day, data, opts) {
			rendered = true
		}
	}
	if !rendered {
		pp.NewLine()
		pp.Line("No activity found in date range.")
	}
	pp.NewLine()
	return nil
}

// storyPool loads every collection, dropping soft-deleted records unless
// the sub-view or config asks for them.
func (c *Composer) storyPool(ctx context.Context, sv *SubView) (*storyPool, error) {
	includeDeleted := sv.IncludeDeleted || c.Config.IncludeDeleted()
	pool := &storyPool{}

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

	for _, t := range tasks {
		if includeDeleted || !t.IsDeleted() {
			pool.tasks = append(pool.tasks, t)
		}
	}
	for _, a := range audits {
		if includeDeleted || !a.IsDeleted() {
			pool.audits = append(pool.audits, a)
		}
	}
	for _, e := range events {
		if includeDeleted || !e.IsDeleted() {
			pool.events = append(pool.events, e)
		}
	}
	for _, s := range spans {
		if includeDeleted || !s.IsDeleted() {
			pool.spans = append(pool.spans, s)
		}
	}
	for _, l := range logs {
		if includeDeleted || !l.IsDeleted() {
			pool.logs = append(pool.logs, l)
		}
	}
	for _, n := range notes {
		if includeDeleted || !n.IsDeleted() {
			pool.notes = append(pool.notes, n)
		}
	}
	for _, e := range entries {
		if includeDeleted || !e.IsDeleted() {
			pool.entries = append(pool.entries, e)
		}
	}
	pool.trackers = trackers
	return pool, nil
}

// resolveAnchors maps display ids back to real ids. Unknown display ids
// are skipped rather than failing the whole render.
func (c *Composer) resolveAnchors(t entity.Type, ids []int) ([]string, error) {
	var out []string
	for _, id := range ids {
		real, err := c.IDs.RealID(t, id)
		if err != nil {
			var notFound *idmap.NotFoundError
			if errors.As(err, &notFound) {
				continue
			}
			return nil, err
		}
		out = append(out, real)
	}
	return out, nil
}

// collectTasks gathers each anchor task, its time audits, and the logs
// and notes hanging off either.
func (p *storyPool) collectTasks(taskIDs []string) storySet {
	var set storySet
	auditIDs := map[string]bool{}
	for _, taskID := range taskIDs {
		var task *entity.Task
		for _, t := range p.tasks {
			if t.ID == taskID {
				task = t
				break
			}
		}
		if task == nil {
			continue
		}
		set.tasks = append(set.tasks, task)
		for _, a := range p.audits {
			if a.TaskID == taskID {
				set.audits = append(set.audits, a)
				auditIDs[a.ID] = true
			}
		}
		for _, l := range p.logs {
			if referencesTask(l.ReferenceType, l.ReferenceID, taskID, auditIDs) {
				set.logs = append(set.logs, l)
			}
		}
		for _, n := range p.notes {
			if referencesTask(n.ReferenceType, n.ReferenceID, taskID, auditIDs) {
				set.notes = append(set.notes, n)
			}
		}
	}
	return dedupeSet(set)
}

func referencesTask(refType, refID, taskID string, auditIDs map[string]bool) bool {
	switch entity.Type(refType) {
	case entity.TypeTask:
		return refID == taskID
	case entity.TypeTimeAudit:
		return auditIDs[refID]
	}
	return false
}

func (p *storyPool) collectTimeAudits(auditIDs []string) storySet {
	var set storySet
	want := map[string]bool{}
	for _, id := range auditIDs {
		want[id] = true
	}
	for _, a := range p.audits {
		if want[a.ID] {
			set.audits = append(set.audits, a)
		}
	}
	for _, l := range p.logs {
		if entity.Type(l.ReferenceType) == entity.TypeTimeAudit && want[l.ReferenceID] {
			set.logs = append(set.logs, l)
		}
	}
	for _, n := range p.notes {
		if entity.Type(n.ReferenceType) == entity.TypeTimeAudit && want[n.ReferenceID] {
			set.notes = append(set.notes, n)
		}
	}
	return set
}

func (p *storyPool) collectEvents(eventIDs []string) storySet {
	var set storySet
	want := map[string]bool{}
	for _, id := range eventIDs {
		want[id] = true
	}
	for _, e := range p.events {
		if want[e.ID] {
			set.events = append(set.events, e)
		}
	}
	for _, l := range p.logs {
		if entity.Type(l.ReferenceType) == entity.TypeEvent && want[l.ReferenceID] {
			set.logs = append(set.logs, l)
		}
	}
	for _, n := range p.notes {
		if entity.Type(n.ReferenceType) == entity.TypeEvent && want[n.ReferenceID] {
			set.notes = append(set.notes, n)
		}
	}
	return set
}

// collectProjects gathers every entity carrying one of the projects,
// plus time audits of project tasks and logs/notes referencing any of
// the gathered entities.
func (p *storyPool) collectProjects(projects []string) storySet {
	var set storySet
	taskIDs := map[string]bool{}
	auditIDs := map[string]bool{}
	eventIDs := map[string]bool{}
	trackerIDs := map[string]bool{}

	for _, project := range projects {
		for _, t := range p.tasks {
			if t.Project == project {
				set.tasks = append(set.tasks, t)
				taskIDs[t.ID] = true
			}
		}
		for _, a := range p.audits {
			if a.Project == project || taskIDs[a.TaskID] {
				set.audits = append(set.audits, a)
				auditIDs[a.ID] = true
			}
		}
		for _, e := range p.events {
			if e.Project == project {
				set.events = append(set.events, e)
				eventIDs[e.ID] = true
			}
		}
		for _, s := range p.spans {
			if containsString(s.Projects, project) {
				set.spans = append(set.spans, s)
			}
		}
		for _, tr := range p.trackers {
			if tr.Project == project {
				trackerIDs[tr.ID] = true
			}
		}
		for _, l := range p.logs {
			if l.Project == project || referencesAny(l.ReferenceType, l.ReferenceID, taskIDs, auditIDs, eventIDs) {
				set.logs = append(set.logs, l)
			}
		}
		for _, n := range p.notes {
			if n.Project == project || referencesAny(n.ReferenceType, n.ReferenceID, taskIDs, auditIDs, eventIDs) {
				set.notes = append(set.notes, n)
			}
		}
		for _, e := range p.entries {
			if e.Project == project || trackerIDs[e.TrackerID] {
				set.entries = append(set.entries, e)
			}
		}
	}
	return dedupeSet(set)
}

// collectTags gathers entities holding every requested tag, plus the
// same transitive closure as the project story.
func (p *storyPool) collectTags(tags []string) storySet {
	hasAll := func(entityTags []string) bool {
		for _, tag := range tags {
			if !containsString(entityTags, tag) {
				return false
			}
		}
		return true
	}

	var set storySet
	taskIDs := map[string]bool{}
	auditIDs := map[string]bool{}
	eventIDs := map[string]bool{}
	trackerIDs := map[string]bool{}

	for _, t := range p.tasks {
		if hasAll(t.Tags) {
			set.tasks = append(set.tasks, t)
			taskIDs[t.ID] = true
		}
	}
	for _, a := range p.audits {
		if hasAll(a.Tags) || taskIDs[a.TaskID] {
			set.audits = append(set.audits, a)
			auditIDs[a.ID] = true
		}
	}
	for _, e := range p.events {
		if hasAll(e.Tags) {
			set.events = append(set.events, e)
			eventIDs[e.ID] = true
		}
	}
	for _, s := range p.spans {
		if hasAll(s.Tags) {
			set.spans = append(set.spans, s)
		}
	}
	for _, tr := range p.trackers {
		if hasAll(tr.Tags) {
			trackerIDs[tr.ID] = true
		}
	}
	for _, l := range p.logs {
		if hasAll(l.Tags) || referencesAny(l.ReferenceType, l.ReferenceID, taskIDs, auditIDs, eventIDs) {
			set.logs = append(set.logs, l)
		}
	}
	for _, n := range p.notes {
		if hasAll(n.Tags) || referencesAny(n.ReferenceType, n.ReferenceID, taskIDs, auditIDs, eventIDs) {
			set.notes = append(set.notes, n)
		}
	}
	for _, e := range p.entries {
		if trackerIDs[e.TrackerID] {
			set.entries = append(set.entries, e)
		}
	}
	return set
}

func referencesAny(refType, refID string, taskIDs, auditIDs, eventIDs map[string]bool) bool {
	switch entity.Type(refType) {
	case entity.TypeTask:
		return taskIDs[refID]
	case entity.TypeTimeAudit:
		return auditIDs[refID]
	case entity.TypeEvent:
		return eventIDs[refID]
	}
	return false
}

func dedupeSet(set storySet) storySet {
	var out storySet
	seen := map[string]bool{}
	keep := func(id string) bool {
		if seen[id] {
			return false
		}
		seen[id] = true
		return true
	}
	for _, t := range set.tasks {
		if keep(t.ID) {
			out.tasks = append(out.tasks, t)
		}
	}
	for _, a := range set.audits {
		if keep(a.ID) {
			out.audits = append(out.audits, a)
		}
	}
	for _, e := range set.events {
		if keep(e.ID) {
			out.events = append(out.events, e)
		}
	}
	for _, s := range set.spans {
		if keep(s.ID) {
			out.spans = append(out.spans, s)
		}
	}
	for _, l := range set.logs {
		if keep(l.ID) {
			out.logs = append(out.logs, l)
		}
	}
	for _, n := range set.notes {
		if keep(n.ID) {
			out.notes = append(out.notes, n)
		}
	}
	for _, e := range set.entries {
		if keep(e.ID) {
			out.entries = append(out.entries, e)
		}
	}
	return out
}

// intersectSets keeps only entities present in both sets.
func intersectSets(a, b storySet) storySet {
	ids := map[string]bool{}
	for _, t := range b.tasks {
		ids[t.ID] = true
	}
	for _, x := range b.audits {
		ids[x.ID] = true
	}
	for _, x := range b.events {
		ids[x.ID] = true
	}
	for _, x := range b.spans {
		ids[x.ID] = true
	}
	for _, x := range b.logs {
		ids[x.ID] = true
	}
	for _, x := range b.notes {
		ids[x.ID] = true
	}
	for _, x := range b.entries {
		ids[x.ID] = true
	}

	var out storySet
	for _, t := range a.tasks {
		if ids[t.ID] {
			out.tasks = append(out.tasks, t)
		}
	}
	for _, x := range a.audits {
		if ids[x.ID] {
			out.audits = append(out.audits, x)
		}
	}
	for _, x := range a.events {
		if ids[x.ID] {
			out.events = append(out.events, x)
		}
	}
	for _, x := range a.spans {
		if ids[x.ID] {
			out.spans = append(out.spans, x)
		}
	}
	for _, x := range a.logs {
		if ids[x.ID] {
			out.logs = append(out.logs, x)
		}
	}
	for _, x := range a.notes {
		if ids[x.ID] {
			out.notes = append(out.notes, x)
		}
	}
	for _, x := range a.entries {
		if ids[x.ID] {
			out.entries = append(out.entries, x)
		}
	}
	return out
}

// storyWindow derives the rendered day range: explicit start/end win,
// otherwise the span of every timestamp the story touches.
func (c *Composer) storyWindow(sv *SubView, story storySet) (time.Time, time.Time, error) {
	var start, end time.Time
	if sv.Start != "" {
		at, _, err := timeutil.ResolveDateToken(sv.Start, c.Now)
		if err != nil {
			return start, end, err
		}
		start = timeutil.StartOfDay(at)
	}
	if sv.End != "" {
		at, _, err := timeutil.ResolveDateToken(sv.End, c.Now)
		if err != nil {
			return start, end, err
		}
		end = timeutil.StartOfDay(at)
	}
	if !start.IsZero() && !end.IsZero() {
		return start, end, nil
	}

	var dates []time.Time
	add := func(ts *entity.Timestamp) {
		if ts != nil {
			dates = append(dates, ts.Time)
		}
	}
	for _, t := range story.tasks {
		add(t.Scheduled)
		add(t.Due)
		dates = append(dates, t.Created.Time)
	}
	for _, a := range story.audits {
		add(a.Start)
		add(a.End)
	}
	for _, e := range story.events {
		dates = append(dates, e.Start.Time)
		add(e.End)
	}
	for _, s := range story.spans {
		add(s.Start)
		add(s.End)
	}
	for _, l := range story.logs {
		add(l.Timestamp)
	}
	for _, n := range story.notes {
		add(n.Timestamp)
	}
	for _, e := range story.entries {
		dates = append(dates, e.Timestamp.Time)
	}

	lo, hi := timeutil.StartOfDay(c.Now), timeutil.StartOfDay(c.Now)
	if len(dates) > 0 {
		lo, hi = dates[0], dates[0]
		for _, d := range dates[1:] {
			if d.Before(lo) {
				lo = d
			}
			if d.After(hi) {
				hi = d
			}
		}
		lo, hi = timeutil.StartOfDay(lo.Local()), timeutil.StartOfDay(hi.Local())
	}
	if start.IsZero() {
		start = lo
	}
	if end.IsZero() {
		end = hi
	}
	return start, end, nil
}

// storyTitle names the story after its anchors.
func (c *Composer) storyTitle(sv *SubView, pool *storyPool, story storySet) string {
	var parts []string
	for _, id := range sv.TaskIDs {
		real, err := c.IDs.RealID(entity.TypeTask, id)
		if err != nil {
			continue
		}
		for _, t := range pool.tasks {
			if t.ID == real {
				parts = append(parts, fmt.Sprintf("Task #%d - %s", id, truncate(orPlaceholder(t.Description), 40)))
				break
			}
		}
	}
	for _, id := range sv.TimeAuditIDs {
		real, err := c.IDs.RealID(entity.TypeTimeAudit, id)
		if err != nil {
			continue
		}
		for _, a := range pool.audits {
			if a.ID == real {
				parts = append(parts, fmt.Sprintf("Time Audit #%d - %s", id, truncate(orPlaceholder(a.Description), 30)))
				break
			}
		}
	}
	for _, id := range sv.EventIDs {
		real, err := c.IDs.RealID(entity.TypeEvent, id)
		if err != nil {
			continue
		}
		for _, e := range pool.events {
			if e.ID == real {
				title := e.Title
				if title == "" {
					title = "[no title]"
				}
				parts = append(parts, fmt.Sprintf("Event #%d - %s", id, truncate(title, 30)))
				break
			}
		}
	}
	for _, project := range sv.Project {
		parts = append(parts, fmt.Sprintf("Project %s (%d tasks, %d time audits, %d logs)",
			project, len(story.tasks), len(story.audits), len(story.logs)))
	}
	if len(sv.Tag) > 0 {
		tags := make([]string, len(sv.Tag))
		for i, tag := range sv.Tag {
			tags[i] = "#" + tag
		}
		parts = append(parts, fmt.Sprintf("Tag %s (%d tasks, %d time audits)",
			strings.Join(tags, ", "), len(story.tasks), len(story.audits)))
	}

	switch {
	case len(parts) > 1:
		return "Story: " + strings.Join(parts[:2], ", ") + " (combined)"
	case len(parts) == 1:
		return "Story: " + parts[0]
	default:
		return "Story"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
