package entity

import (
	"tableflip.dev/granular/pkg/query"
)

// Timespan is a long-running block of intent (a sprint, a vacation, a
// focus period). Unlike the other grouped types it carries a list of
// projects.
type Timespan struct {
	ID           string     `json:"id"`
	Description  string     `json:"description,omitempty"`
	Projects     []string   `json:"projects,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	Color        string     `json:"color,omitempty"`
	Start        *Timestamp `json:"start,omitempty"`
	End          *Timestamp `json:"end,omitempty"`
	Completed    *Timestamp `json:"completed,omitempty"`
	NotCompleted *Timestamp `json:"not_completed,omitempty"`
	Cancelled    *Timestamp `json:"cancelled,omitempty"`
	Created      Timestamp  `json:"created"`
	Updated      Timestamp  `json:"updated"`
	Deleted      *Timestamp `json:"deleted,omitempty"`
}

func NewTimespan(description string) *Timespan {
	now := Now()
	return &Timespan{
		ID:          NewID(),
		Description: description,
		Created:     now,
		Updated:     now,
	}
}

func (s *Timespan) EntityType() Type { return TypeTimespan }
func (s *Timespan) RealID() string   { return s.ID }
func (s *Timespan) IsDeleted() bool  { return s.Deleted != nil }
func (s *Timespan) Touch()           { s.Updated = Now() }

func (s *Timespan) Properties() query.Record {
	return query.Record{
		"id":            query.String(s.ID),
		"description":   query.String(s.Description),
		"projects":      query.Tags(s.Projects),
		"tags":          query.Tags(s.Tags),
		"color":         query.String(s.Color),
		"start":         timeOf(s.Start),
		"end":           timeOf(s.End),
		"completed":     timeOf(s.Completed),
		"not_completed": timeOf(s.NotCompleted),
		"cancelled":     timeOf(s.Cancelled),
		"created":       query.Time(s.Created.Time),
		"updated":       query.Time(s.Updated.Time),
		"deleted":       timeOf(s.Deleted),
	}
}
