package entity

import (
	"tableflip.dev/granular/pkg/query"
)

// Task is a unit of work. The closed-state timestamps are mutually
// exclusive in practice but not enforced structurally, matching the
// on-disk records this schema was grown from.
type Task struct {
	ID           string     `json:"id"`
	Description  string     `json:"description,omitempty"`
	Project      string     `json:"project,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	Priority     *int       `json:"priority,omitempty"`
	Estimate     *Duration  `json:"estimate,omitempty"`
	Color        string     `json:"color,omitempty"`
	ClonedFromID string     `json:"cloned_from_id,omitempty"`
	TimespanID   string     `json:"timespan_id,omitempty"`
	Created      Timestamp  `json:"created"`
	Updated      Timestamp  `json:"updated"`
	Scheduled    *Timestamp `json:"scheduled,omitempty"`
	Due          *Timestamp `json:"due,omitempty"`
	Started      *Timestamp `json:"started,omitempty"`
	Completed    *Timestamp `json:"completed,omitempty"`
	NotCompleted *Timestamp `json:"not_completed,omitempty"`
	Cancelled    *Timestamp `json:"cancelled,omitempty"`
	Deleted      *Timestamp `json:"deleted,omitempty"`
}

func NewTask(description string) *Task {
	now := Now()
	return &Task{
		ID:          NewID(),
		Description: description,
		Created:     now,
		Updated:     now,
	}
}

func (t *Task) EntityType() Type { return TypeTask }
func (t *Task) RealID() string   { return t.ID }
func (t *Task) IsDeleted() bool  { return t.Deleted != nil }

// Closed reports whether the task reached any terminal state.
func (t *Task) Closed() bool {
	return t.Completed != nil || t.NotCompleted != nil || t.Cancelled != nil
}

func (t *Task) Touch() { t.Updated = Now() }

func (t *Task) Properties() query.Record {
	estimate := query.NullDuration()
	if t.Estimate != nil {
		estimate = query.Duration(t.Estimate.Duration)
	}
	return query.Record{
		"id":             query.String(t.ID),
		"description":    query.String(t.Description),
		"project":        query.String(t.Project),
		"tags":           query.Tags(t.Tags),
		"priority":       query.NumberPtr(t.Priority),
		"estimate":       estimate,
		"color":          query.String(t.Color),
		"cloned_from_id": query.String(t.ClonedFromID),
		"timespan_id":    query.String(t.TimespanID),
		"created":        query.Time(t.Created.Time),
		"updated":        query.Time(t.Updated.Time),
		"scheduled":      timeOf(t.Scheduled),
		"due":            timeOf(t.Due),
		"started":        timeOf(t.Started),
		"completed":      timeOf(t.Completed),
		"not_completed":  timeOf(t.NotCompleted),
		"cancelled":      timeOf(t.Cancelled),
		"deleted":        timeOf(t.Deleted),
	}
}
