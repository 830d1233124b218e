package entity

import (
	"tableflip.dev/granular/pkg/query"
)

// EntryValue is the recorded measurement. Exactly one of Number or Option
// is set, depending on the tracker's value type; checkin entries carry
// neither.
type EntryValue struct {
	Number *float64 `json:"number,omitempty"`
	Option string   `json:"option,omitempty"`
}

// Entry is one recorded data point for a tracker.
type Entry struct {
	ID        string      `json:"id"`
	TrackerID string      `json:"tracker_id"`
	Timestamp Timestamp   `json:"timestamp"`
	Value     *EntryValue `json:"value,omitempty"`
	Project   string      `json:"project,omitempty"`
	Tags      []string    `json:"tags,omitempty"`
	Color     string      `json:"color,omitempty"`
	Created   Timestamp   `json:"created"`
	Updated   Timestamp   `json:"updated"`
	Deleted   *Timestamp  `json:"deleted,omitempty"`
}

func NewEntry(trackerID string, at Timestamp) *Entry {
	now := Now()
	return &Entry{
		ID:        NewID(),
		TrackerID: trackerID,
		Timestamp: at,
		Created:   now,
		Updated:   now,
	}
}

func (e *Entry) EntityType() Type { return TypeEntry }
func (e *Entry) RealID() string   { return e.ID }
func (e *Entry) IsDeleted() bool  { return e.Deleted != nil }
func (e *Entry) Touch()           { e.Updated = Now() }

// Number returns the numeric value when one is recorded.
func (e *Entry) Number() (float64, bool) {
	if e.Value == nil || e.Value.Number == nil {
		return 0, false
	}
	return *e.Value.Number, true
}

func (e *Entry) Properties() query.Record {
	value := query.NullNumber()
	if n, ok := e.Number(); ok {
		value = query.Number(n)
	} else if e.Value != nil && e.Value.Option != "" {
		value = query.String(e.Value.Option)
	}
	return query.Record{
		"id":         query.String(e.ID),
		"tracker_id": query.String(e.TrackerID),
		"timestamp":  query.Time(e.Timestamp.Time),
		"value":      value,
		"project":    query.String(e.Project),
		"tags":       query.Tags(e.Tags),
		"color":      query.String(e.Color),
		"created":    query.Time(e.Created.Time),
		"updated":    query.Time(e.Updated.Time),
		"deleted":    timeOf(e.Deleted),
	}
}
