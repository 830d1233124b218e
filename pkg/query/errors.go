package query

import "fmt"

// MalformedFilterError reports a filter tree whose shape or embedded
// expression cannot be evaluated.
type MalformedFilterError struct {
	Reason string
}

func (e *MalformedFilterError) Error() string {
	return fmt.Sprintf("malformed filter: %s", e.Reason)
}

// UnknownPropertyError reports a filter, sort key, or column that names a
// property absent from the entity's schema.
type UnknownPropertyError struct {
	Property string
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("unknown property %q", e.Property)
}
