// Package entity defines the persisted record types and their property
// schemas.
package entity

import (
	"tableflip.dev/granular/pkg/query"
)

// Type identifies an entity collection.
type Type string

const (
	TypeTask      Type = "task"
	TypeEvent     Type = "event"
	TypeTimeAudit Type = "time_audit"
	TypeTimespan  Type = "timespan"
	TypeNote      Type = "note"
	TypeLog       Type = "log"
	TypeTracker   Type = "tracker"
	TypeEntry     Type = "entry"
	TypeContext   Type = "context"
)

// AllTypes lists every known entity type.
func AllTypes() []Type {
	return []Type{
		TypeTask,
		TypeEvent,
		TypeTimeAudit,
		TypeTimespan,
		TypeNote,
		TypeLog,
		TypeTracker,
		TypeEntry,
		TypeContext,
	}
}

// Valid reports whether t is one of the known entity types.
func (t Type) Valid() bool {
	for _, known := range AllTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Entity is the contract every record type satisfies.
type Entity interface {
	query.Properties
	EntityType() Type
	RealID() string
}
