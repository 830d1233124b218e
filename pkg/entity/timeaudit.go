package entity

import (
	"time"

	"tableflip.dev/granular/pkg/query"
)

// TimeAudit is a recorded span of time, optionally linked to a task.
type TimeAudit struct {
	ID          string     `json:"id"`
	Description string     `json:"description,omitempty"`
	Project     string     `json:"project,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Color       string     `json:"color,omitempty"`
	Start       *Timestamp `json:"start,omitempty"`
	End         *Timestamp `json:"end,omitempty"`
	TaskID      string     `json:"task_id,omitempty"`
	Created     Timestamp  `json:"created"`
	Updated     Timestamp  `json:"updated"`
	Deleted     *Timestamp `json:"deleted,omitempty"`
}

func NewTimeAudit(description string) *TimeAudit {
	now := Now()
	return &TimeAudit{
		ID:          NewID(),
		Description: description,
		Created:     now,
		Updated:     now,
	}
}

func (a *TimeAudit) EntityType() Type { return TypeTimeAudit }
func (a *TimeAudit) RealID() string   { return a.ID }
func (a *TimeAudit) IsDeleted() bool  { return a.Deleted != nil }
func (a *TimeAudit) Touch()           { a.Updated = Now() }

// Elapsed returns the audited duration, zero while still running.
func (a *TimeAudit) Elapsed() time.Duration {
	if a.Start == nil || a.End == nil {
		return 0
	}
	return a.End.Sub(a.Start.Time)
}

func (a *TimeAudit) Properties() query.Record {
	return query.Record{
		"id":          query.String(a.ID),
		"description": query.String(a.Description),
		"project":     query.String(a.Project),
		"tags":        query.Tags(a.Tags),
		"color":       query.String(a.Color),
		"start":       timeOf(a.Start),
		"end":         timeOf(a.End),
		"task_id":     query.String(a.TaskID),
		"created":     query.Time(a.Created.Time),
		"updated":     query.Time(a.Updated.Time),
		"deleted":     timeOf(a.Deleted),
	}
}
