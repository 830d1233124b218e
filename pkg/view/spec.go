// Package view composes filtered, sorted, projected slices of the entity
// collections into rendered terminal output, driven by declarative
// compound view specifications.
package view

import (
	"fmt"

	"tableflip.dev/granular/pkg/query"
)

// ViewType discriminates sub-view specs.
type ViewType string

const (
	ViewTask         ViewType = "task"
	ViewTimeAudit    ViewType = "time_audit"
	ViewEvent        ViewType = "event"
	ViewTimespan     ViewType = "timespan"
	ViewLog          ViewType = "log"
	ViewMarkdown     ViewType = "markdown"
	ViewHeader       ViewType = "header"
	ViewSpace        ViewType = "space"
	ViewAgenda       ViewType = "agenda"
	ViewGantt        ViewType = "gantt"
	ViewTasksHeatmap ViewType = "tasks_heatmap"
	ViewStory        ViewType = "story"
)

// SubView is one sub-view specification. A single struct backs every view
// type; ViewType decides which fields are read, mirroring the on-disk
// format where each mapping carries only the keys its type uses.
type SubView struct {
	ViewType ViewType `yaml:"view_type"`

	// Tabular views.
	Columns        []string      `yaml:"columns,omitempty"`
	Sort           []string      `yaml:"sort,omitempty"`
	Filter         *query.Filter `yaml:"filter,omitempty"`
	IncludeDeleted bool          `yaml:"include_deleted,omitempty"`
	NoHeader       bool          `yaml:"no_header,omitempty"`
	NoColor        bool          `yaml:"no_color,omitempty"`
	NoWrap         bool          `yaml:"no_wrap,omitempty"`

	// Markdown views.
	Markdown string `yaml:"markdown,omitempty"`

	// Agenda views.
	NumDays            *int   `yaml:"num_days,omitempty"`
	Start              string `yaml:"start,omitempty"`
	End                string `yaml:"end,omitempty"`
	OnlyActiveDays     bool   `yaml:"only_active_days,omitempty"`
	ShowScheduledTasks *bool  `yaml:"show_scheduled_tasks,omitempty"`
	ShowDueTasks       *bool  `yaml:"show_due_tasks,omitempty"`
	ShowEvents         *bool  `yaml:"show_events,omitempty"`
	ShowTimespans      *bool  `yaml:"show_timespans,omitempty"`
	ShowLogs           *bool  `yaml:"show_logs,omitempty"`
	ShowNotes          *bool  `yaml:"show_notes,omitempty"`
	ShowTimeAudits     *bool  `yaml:"show_time_audits,omitempty"`
	ShowTasks          *bool  `yaml:"show_tasks,omitempty"`
	ShowEntries        *bool  `yaml:"show_entries,omitempty"`
	LimitNoteLines     *int   `yaml:"limit_note_lines,omitempty"`

	// Gantt and heatmap views.
	Granularity     Granularity `yaml:"granularity,omitempty"`
	Days            *int        `yaml:"days,omitempty"`
	LeftColumnWidth *int        `yaml:"left_column_width,omitempty"`
	Projects        []string    `yaml:"projects,omitempty"`
	Tags            []string    `yaml:"tags,omitempty"`

	// Story anchors. Synthetic ids, resolved through the id map.
	TaskIDs      []int    `yaml:"task,omitempty"`
	TimeAuditIDs []int    `yaml:"time_audit,omitempty"`
	EventIDs     []int    `yaml:"event,omitempty"`
	Project      []string `yaml:"project,omitempty"`
	Tag          []string `yaml:"tag,omitempty"`
}

// Granularity buckets heatmap and gantt slots.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

func (g Granularity) orDefault() Granularity {
	if g == "" {
		return GranularityDay
	}
	return g
}

// CompoundView is a named, persisted composition of sub-views rendered
// together in order.
type CompoundView struct {
	Name  string     `yaml:"name"`
	Views []*SubView `yaml:"views"`
}

// Validate rejects specs the composer cannot execute.
func (cv *CompoundView) Validate() error {
	if cv.Name == "" {
		return fmt.Errorf("view: compound view needs a name")
	}
	for i, sv := range cv.Views {
		if sv == nil {
			return fmt.Errorf("view %q: sub-view %d is empty", cv.Name, i)
		}
		switch sv.ViewType {
		case ViewTask, ViewTimeAudit, ViewEvent, ViewTimespan, ViewLog,
			ViewMarkdown, ViewHeader, ViewSpace, ViewAgenda, ViewGantt,
			ViewTasksHeatmap, ViewStory:
		default:
			return fmt.Errorf("view %q: sub-view %d has unknown view_type %q",
				cv.Name, i, sv.ViewType)
		}
		switch sv.Granularity {
		case "", GranularityDay, GranularityWeek, GranularityMonth:
		default:
			return fmt.Errorf("view %q: sub-view %d has unknown granularity %q",
				cv.Name, i, sv.Granularity)
		}
	}
	return nil
}

func boolOr(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}

func intOr(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}
