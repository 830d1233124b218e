package idmap

import (
	"errors"
	"testing"

	"tableflip.dev/granular/pkg/entity"
)

func TestAssociateIsSequentialAndIdempotent(t *testing.T) {
	m := New()

	first, err := m.Associate(entity.TypeTask, "real-a")
	if err != nil {
		t.Fatalf("associate: %v", err)
	}
	if first != 1 {
		t.Fatalf("first id: got %d, want 1", first)
	}

	second, _ := m.Associate(entity.TypeTask, "real-b")
	if second != 2 {
		t.Fatalf("second id: got %d, want 2", second)
	}

	again, _ := m.Associate(entity.TypeTask, "real-a")
	if again != first {
		t.Fatalf("repeat associate: got %d, want %d", again, first)
	}
}

func TestAssociatePerTypeSequences(t *testing.T) {
	m := New()
	taskID, _ := m.Associate(entity.TypeTask, "t1")
	eventID, _ := m.Associate(entity.TypeEvent, "e1")
	if taskID != 1 || eventID != 1 {
		t.Fatalf("each type counts independently: got task=%d event=%d", taskID, eventID)
	}
}

func TestRealIDInvertsAssociate(t *testing.T) {
	m := New()
	id, _ := m.Associate(entity.TypeNote, "real-n")
	real, err := m.RealID(entity.TypeNote, id)
	if err != nil {
		t.Fatalf("real id: %v", err)
	}
	if real != "real-n" {
		t.Fatalf("got %q, want real-n", real)
	}
}

func TestRealIDUnknownSynthetic(t *testing.T) {
	m := New()
	_, err := m.RealID(entity.TypeTask, 42)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
}

func TestInvalidEntityType(t *testing.T) {
	m := New()
	_, err := m.Associate(entity.Type("widget"), "x")
	var invalid *InvalidEntityTypeError
	if !errors.As(err, &invalid) {
		t.Fatalf("want InvalidEntityTypeError, got %v", err)
	}
}

func TestClearRestartsNumbering(t *testing.T) {
	m := New()
	m.Associate(entity.TypeTask, "a")
	m.Associate(entity.TypeTask, "b")

	m.Clear()

	id, _ := m.Associate(entity.TypeTask, "c")
	if id != 1 {
		t.Fatalf("after clear: got %d, want 1", id)
	}
	if _, err := m.RealID(entity.TypeTask, 2); err == nil {
		t.Fatal("old assignments should be gone after clear")
	}
}

func TestRenderOrderDecidesIDs(t *testing.T) {
	// Two renders in different orders give different ids; a repeat render
	// keeps the first epoch's assignments.
	m := New()
	for _, real := range []string{"x", "y", "z"} {
		m.Associate(entity.TypeTask, real)
	}
	id, _ := m.Associate(entity.TypeTask, "y")
	if id != 2 {
		t.Fatalf("y: got %d, want 2", id)
	}

	m.Clear()
	for _, real := range []string{"z", "y", "x"} {
		m.Associate(entity.TypeTask, real)
	}
	id, _ = m.Associate(entity.TypeTask, "y")
	if id != 2 {
		t.Fatalf("y after reorder: got %d, want 2", id)
	}
	id, _ = m.Associate(entity.TypeTask, "z")
	if id != 1 {
		t.Fatalf("z after reorder: got %d, want 1", id)
	}
}

func TestFlushAndLoadRoundTrip(t *testing.T) {
	base := t.TempDir()

	m := New()
	m.Associate(entity.TypeTask, "real-a")
	m.Associate(entity.TypeEvent, "real-e")
	if err := m.Flush(base); err != nil {
		t.Fatalf("flush: %v", err)
	}

	loaded, err := Load(base)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	real, err := loaded.RealID(entity.TypeTask, 1)
	if err != nil {
		t.Fatalf("real id after load: %v", err)
	}
	if real != "real-a" {
		t.Fatalf("got %q, want real-a", real)
	}
	if loaded.Dirty() {
		t.Fatal("freshly loaded map should not be dirty")
	}
}

func TestLoadMissingFileIsFreshMap(t *testing.T) {
	m, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	id, _ := m.Associate(entity.TypeTask, "a")
	if id != 1 {
		t.Fatalf("got %d, want 1", id)
	}
}

func TestClearOnNextAssignWaitsForAssignment(t *testing.T) {
	base := t.TempDir()
	m := New()
	m.Associate(entity.TypeTask, "a")
	m.Associate(entity.TypeTask, "b")
	if err := m.Flush(base); err != nil {
		t.Fatalf("flush: %v", err)
	}

	loaded, err := Load(base)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	loaded.ClearOnNextAssign()

	// A command that only resolves ids leaves the previous epoch intact.
	if loaded.Dirty() {
		t.Fatal("a scheduled clear alone should not dirty the map")
	}
	real, err := loaded.RealID(entity.TypeTask, 2)
	if err != nil {
		t.Fatalf("real id before any assignment: %v", err)
	}
	if real != "b" {
		t.Fatalf("got %q, want b", real)
	}

	// The first assignment starts the fresh epoch.
	id, _ := loaded.Associate(entity.TypeTask, "c")
	if id != 1 {
		t.Fatalf("after scheduled clear: got %d, want 1", id)
	}
	if !loaded.Dirty() {
		t.Fatal("assignment should dirty the map")
	}
	if _, err := loaded.RealID(entity.TypeTask, 2); err == nil {
		t.Fatal("old epoch should be gone once a new id is assigned")
	}
}

func TestFlushSkipsWhenClean(t *testing.T) {
	base := t.TempDir()
	m := New()
	if err := m.Flush(base); err != nil {
		t.Fatalf("flush clean map: %v", err)
	}
	if _, err := Load(base); err != nil {
		t.Fatalf("load: %v", err)
	}
}
