package entity

import (
	"tableflip.dev/granular/pkg/query"
)

// Context is a named working mode. At most one context is active; its
// filter narrows every view, and its auto-added fields are stamped onto
// newly created entities.
type Context struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Active           bool          `json:"active,omitempty"`
	Filter           *query.Filter `json:"filter,omitempty"`
	AutoAddedTags    []string      `json:"auto_added_tags,omitempty"`
	AutoAddedProject string        `json:"auto_added_project,omitempty"`
	Created          Timestamp     `json:"created"`
	Updated          Timestamp     `json:"updated"`
	Deleted          *Timestamp    `json:"deleted,omitempty"`
}

func NewContext(name string) *Context {
	now := Now()
	return &Context{
		ID:      NewID(),
		Name:    name,
		Created: now,
		Updated: now,
	}
}

func (c *Context) EntityType() Type { return TypeContext }
func (c *Context) RealID() string   { return c.ID }
func (c *Context) IsDeleted() bool  { return c.Deleted != nil }
func (c *Context) Touch()           { c.Updated = Now() }

func (c *Context) Properties() query.Record {
	return query.Record{
		"id":                 query.String(c.ID),
		"name":               query.String(c.Name),
		"active":             query.Bool(c.Active),
		"auto_added_tags":    query.Tags(c.AutoAddedTags),
		"auto_added_project": query.String(c.AutoAddedProject),
		"created":            query.Time(c.Created.Time),
		"updated":            query.Time(c.Updated.Time),
		"deleted":            timeOf(c.Deleted),
	}
}
