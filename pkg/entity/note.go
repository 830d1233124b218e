package entity

import (
	"tableflip.dev/granular/pkg/query"
)

// Note is free-form text attached to another entity (or standalone).
type Note struct {
	ID            string     `json:"id"`
	ReferenceID   string     `json:"reference_id,omitempty"`
	ReferenceType string     `json:"reference_type,omitempty"`
	Timestamp     *Timestamp `json:"timestamp,omitempty"`
	Text          string     `json:"text,omitempty"`
	Project       string     `json:"project,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	Color         string     `json:"color,omitempty"`
	Created       Timestamp  `json:"created"`
	Updated       Timestamp  `json:"updated"`
	Deleted       *Timestamp `json:"deleted,omitempty"`
}

func NewNote(text string) *Note {
	now := Now()
	return &Note{
		ID:        NewID(),
		Text:      text,
		Timestamp: At(now.Time),
		Created:   now,
		Updated:   now,
	}
}

func (n *Note) EntityType() Type { return TypeNote }
func (n *Note) RealID() string   { return n.ID }
func (n *Note) IsDeleted() bool  { return n.Deleted != nil }
func (n *Note) Touch()           { n.Updated = Now() }

func (n *Note) Properties() query.Record {
	return query.Record{
		"id":             query.String(n.ID),
		"reference_id":   query.String(n.ReferenceID),
		"reference_type": query.String(n.ReferenceType),
		"timestamp":      timeOf(n.Timestamp),
		"text":           query.String(n.Text),
		"project":        query.String(n.Project),
		"tags":           query.Tags(n.Tags),
		"color":          query.String(n.Color),
		"created":        query.Time(n.Created.Time),
		"updated":        query.Time(n.Updated.Time),
		"deleted":        timeOf(n.Deleted),
	}
}
