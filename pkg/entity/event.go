package entity

import (
	"tableflip.dev/granular/pkg/query"
)

// Event is a calendar occurrence with a start and an optional end.
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	Project     string     `json:"project,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Color       string     `json:"color,omitempty"`
	Start       Timestamp  `json:"start"`
	End         *Timestamp `json:"end,omitempty"`
	AllDay      bool       `json:"all_day,omitempty"`
	Created     Timestamp  `json:"created"`
	Updated     Timestamp  `json:"updated"`
	Deleted     *Timestamp `json:"deleted,omitempty"`
}

func NewEvent(title string, start Timestamp) *Event {
	now := Now()
	return &Event{
		ID:      NewID(),
		Title:   title,
		Start:   start,
		Created: now,
		Updated: now,
	}
}

func (e *Event) EntityType() Type { return TypeEvent }
func (e *Event) RealID() string   { return e.ID }
func (e *Event) IsDeleted() bool  { return e.Deleted != nil }
func (e *Event) Touch()           { e.Updated = Now() }

func (e *Event) Properties() query.Record {
	return query.Record{
		"id":          query.String(e.ID),
		"title":       query.String(e.Title),
		"description": query.String(e.Description),
		"location":    query.String(e.Location),
		"project":     query.String(e.Project),
		"tags":        query.Tags(e.Tags),
		"color":       query.String(e.Color),
		"start":       query.Time(e.Start.Time),
		"end":         timeOf(e.End),
		"all_day":     query.Bool(e.AllDay),
		"created":     query.Time(e.Created.Time),
		"updated":     query.Time(e.Updated.Time),
		"deleted":     timeOf(e.Deleted),
	}
}
