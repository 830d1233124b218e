// Package idmap assigns small sequential display ids to real entity
// identifiers. Real ids are long opaque tokens; synthetic ids are what a
// human types on the command line. Assignments are made the first time an
// entity appears in rendered output and stay stable until the map is
// cleared.
package idmap

import (
	"fmt"

	"tableflip.dev/granular/pkg/entity"
)

// InvalidEntityTypeError reports an id-map operation on an unrecognized
// entity type. This is a programming error, not user input.
type InvalidEntityTypeError struct {
	Type entity.Type
}

func (e *InvalidEntityTypeError) Error() string {
	return fmt.Sprintf("idmap: invalid entity type %q", e.Type)
}

// NotFoundError reports a synthetic id with no mapping for its type.
type NotFoundError struct {
	Type      entity.Type
	Synthetic int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("idmap: no %s with id %d", e.Type, e.Synthetic)
}

// Table holds the two inverse dictionaries for one entity type. They are
// kept exact inverses at all times.
type Table struct {
	RealToSynthetic map[string]int `yaml:"real_to_synthetic"`
	SyntheticToReal map[int]string `yaml:"synthetic_to_real"`
}

func newTable() *Table {
	return &Table{
		RealToSynthetic: make(map[string]int),
		SyntheticToReal: make(map[int]string),
	}
}

// Map is the full synthetic id mapping, one table per entity type.
type Map struct {
	tables  map[entity.Type]*Table
	dirty   bool
	pending bool
}

func New() *Map {
	m := &Map{tables: make(map[entity.Type]*Table)}
	for _, t := range entity.AllTypes() {
		m.tables[t] = newTable()
	}
	return m
}

// Associate returns the synthetic id for realID, assigning the next
// sequential id on first sight. Idempotent for a given (type, realID).
func (m *Map) Associate(t entity.Type, realID string) (int, error) {
	table, ok := m.tables[t]
	if !ok {
		return 0, &InvalidEntityTypeError{Type: t}
	}
	if m.pending {
		m.Clear()
		table = m.tables[t]
	}
	if synthetic, seen := table.RealToSynthetic[realID]; seen {
		return synthetic, nil
	}
	next := len(table.RealToSynthetic) + 1
	table.RealToSynthetic[realID] = next
	table.SyntheticToReal[next] = realID
	m.dirty = true
	return next, nil
}

// RealID resolves a synthetic id back to the real identifier.
func (m *Map) RealID(t entity.Type, synthetic int) (string, error) {
	table, ok := m.tables[t]
	if !ok {
		return "", &InvalidEntityTypeError{Type: t}
	}
	realID, found := table.SyntheticToReal[synthetic]
	if !found {
		return "", &NotFoundError{Type: t, Synthetic: synthetic}
	}
	return realID, nil
}

// Clear wipes every table, starting a fresh epoch.
func (m *Map) Clear() {
	for _, t := range entity.AllTypes() {
		m.tables[t] = newTable()
	}
	m.dirty = true
	m.pending = false
}

// ClearOnNextAssign schedules a clear that lands just before the next
// assignment. A command that assigns no ids leaves the map untouched, so
// lookups against the previous epoch keep resolving.
func (m *Map) ClearOnNextAssign() {
	m.pending = true
}

// Dirty reports whether the map changed since load.
func (m *Map) Dirty() bool {
	return m.dirty
}
