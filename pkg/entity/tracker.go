package entity

import (
	"tableflip.dev/granular/pkg/query"
)

// EntryFrequency constrains how often a tracker accepts entries.
type EntryFrequency string

const (
	FrequencyIntraDay  EntryFrequency = "intra_day"
	FrequencyDaily     EntryFrequency = "daily"
	FrequencyWeekly    EntryFrequency = "weekly"
	FrequencyMonthly   EntryFrequency = "monthly"
	FrequencyQuarterly EntryFrequency = "quarterly"
)

// ValueType constrains what kind of value each entry records.
type ValueType string

const (
	ValueCheckin      ValueType = "checkin"
	ValueQuantitative ValueType = "quantitative"
	ValueMultiSelect  ValueType = "multi_select"
	ValuePips         ValueType = "pips"
)

// Tracker is a recurring measurement: a habit checkin, a quantity, a
// scale, or pips.
type Tracker struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	EntryType   EntryFrequency `json:"entry_type"`
	ValueType   ValueType      `json:"value_type"`
	Unit        string         `json:"unit,omitempty"`
	ScaleMin    *int           `json:"scale_min,omitempty"`
	ScaleMax    *int           `json:"scale_max,omitempty"`
	Options     []string       `json:"options,omitempty"`
	Project     string         `json:"project,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Color       string         `json:"color,omitempty"`
	Created     Timestamp      `json:"created"`
	Updated     Timestamp      `json:"updated"`
	Archived    *Timestamp     `json:"archived,omitempty"`
	Deleted     *Timestamp     `json:"deleted,omitempty"`
}

func NewTracker(name string, entryType EntryFrequency, valueType ValueType) *Tracker {
	now := Now()
	return &Tracker{
		ID:        NewID(),
		Name:      name,
		EntryType: entryType,
		ValueType: valueType,
		Created:   now,
		Updated:   now,
	}
}

func (t *Tracker) EntityType() Type { return TypeTracker }
func (t *Tracker) RealID() string   { return t.ID }
func (t *Tracker) IsDeleted() bool  { return t.Deleted != nil }
func (t *Tracker) Touch()           { t.Updated = Now() }

func (t *Tracker) Properties() query.Record {
	return query.Record{
		"id":          query.String(t.ID),
		"name":        query.String(t.Name),
		"description": query.String(t.Description),
		"entry_type":  query.String(string(t.EntryType)),
		"value_type":  query.String(string(t.ValueType)),
		"unit":        query.String(t.Unit),
		"scale_min":   query.NumberPtr(t.ScaleMin),
		"scale_max":   query.NumberPtr(t.ScaleMax),
		"options":     query.Tags(t.Options),
		"project":     query.String(t.Project),
		"tags":        query.Tags(t.Tags),
		"color":       query.String(t.Color),
		"created":     query.Time(t.Created.Time),
		"updated":     query.Time(t.Updated.Time),
		"archived":    timeOf(t.Archived),
		"deleted":     timeOf(t.Deleted),
	}
}
