package entity

import (
	"tableflip.dev/granular/pkg/query"
)

// prototype returns a zero-valued entity of each type. Schemas are derived
// from prototypes so the registry cannot drift from Properties.
func prototype(t Type) Entity {
	switch t {
	case TypeTask:
		return &Task{}
	case TypeEvent:
		return &Event{}
	case TypeTimeAudit:
		return &TimeAudit{}
	case TypeTimespan:
		return &Timespan{}
	case TypeNote:
		return &Note{}
	case TypeLog:
		return &Log{}
	case TypeTracker:
		return &Tracker{}
	case TypeEntry:
		return &Entry{}
	case TypeContext:
		return &Context{}
	}
	return nil
}

// Schema maps property names to value kinds for an entity type, or nil
// for an unknown type.
func Schema(t Type) map[string]query.Kind {
	proto := prototype(t)
	if proto == nil {
		return nil
	}
	schema := make(map[string]query.Kind)
	for name, value := range proto.Properties() {
		schema[name] = value.Kind
	}
	return schema
}
