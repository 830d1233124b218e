package entity

import (
	"tableflip.dev/granular/pkg/query"
)

// Log is a short timestamped line attached to another entity, lighter
// weight than a note.
type Log struct {
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

func NewLog(text string) *Log {
	now := Now()
	return &Log{
		ID:        NewID(),
		Text:      text,
		Timestamp: At(now.Time),
		Created:   now,
		Updated:   now,
	}
}

func (l *Log) EntityType() Type { return TypeLog }
func (l *Log) RealID() string   { return l.ID }
func (l *Log) IsDeleted() bool  { return l.Deleted != nil }
func (l *Log) Touch()           { l.Updated = Now() }

func (l *Log) Properties() query.Record {
	return query.Record{
		"id":             query.String(l.ID),
		"reference_id":   query.String(l.ReferenceID),
		"reference_type": query.String(l.ReferenceType),
		"timestamp":      timeOf(l.Timestamp),
		"text":           query.String(l.Text),
		"project":        query.String(l.Project),
		"tags":           query.Tags(l.Tags),
		"color":          query.String(l.Color),
		"created":        query.Time(l.Created.Time),
		"updated":        query.Time(l.Updated.Time),
		"deleted":        timeOf(l.Deleted),
	}
}
