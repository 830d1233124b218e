package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/granular/pkg/entity"
)

// memoryStore is an in-memory Persistence for repository tests.
type memoryStore struct {
	records map[string]entity.Entity
	writes  []string
	erased  []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: map[string]entity.Entity{}}
}

func (m *memoryStore) ListAll(_ context.Context, t entity.Type) ([]entity.Entity, error) {
	var out []entity.Entity
	for _, e := range m.records {
		if e.EntityType() == t {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memoryStore) Write(e entity.Entity) error {
	key := toKey(e.EntityType(), e.RealID())
	m.records[key] = e
	m.writes = append(m.writes, key)
	return nil
}

func (m *memoryStore) Erase(t entity.Type, realID string) error {
	key := toKey(t, realID)
	delete(m.records, key)
	m.erased = append(m.erased, key)
	return nil
}

func (m *memoryStore) BasePath() string { return "" }

func TestPutThenGet(t *testing.T) {
	repo := NewRepository(newMemoryStore())
	ctx := context.Background()

	task := entity.NewTask("water the plants")
	if err := repo.Put(ctx, task); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := repo.Get(ctx, entity.TypeTask, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.RealID() != task.ID {
		t.Fatalf("got %q, want %q", got.RealID(), task.ID)
	}
}

func TestGetUnknownID(t *testing.T) {
	repo := NewRepository(newMemoryStore())
	if _, err := repo.Get(context.Background(), entity.TypeTask, "nope"); err == nil {
		t.Fatal("unknown id should error")
	}
}

func TestCollectionOrdersByCreated(t *testing.T) {
	m := newMemoryStore()
	newer := entity.NewTask("newer")
	older := entity.NewTask("older")
	older.Created = entity.Timestamp{Time: time.Now().Add(-time.Hour)}
	m.Write(newer)
	m.Write(older)
	m.writes = nil

	repo := NewRepository(m)
	tasks, err := repo.Tasks(context.Background())
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].Description != "older" || tasks[1].Description != "newer" {
		t.Fatalf("got [%s %s], want oldest first", tasks[0].Description, tasks[1].Description)
	}
}

func TestFlushWritesOnlyDirty(t *testing.T) {
	m := newMemoryStore()
	clean := entity.NewTask("already on disk")
	m.Write(clean)
	m.writes = nil

	repo := NewRepository(m)
	ctx := context.Background()

	fresh := entity.NewTask("new work")
	if err := repo.Put(ctx, fresh); err != nil {
		t.Fatalf("put: %v", err)
	}
	if len(m.writes) != 0 {
		t.Fatal("put should not write until flush")
	}

	if err := repo.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if len(m.writes) != 1 || m.writes[0] != toKey(entity.TypeTask, fresh.ID) {
		t.Fatalf("flush wrote %v, want only the new task", m.writes)
	}

	// A second flush with nothing dirty is a no-op.
	m.writes = nil
	if err := repo.Flush(ctx); err != nil {
		t.Fatalf("second flush: %v", err)
	}
	if len(m.writes) != 0 {
		t.Fatalf("clean flush wrote %v", m.writes)
	}
}

func TestRemoveErasesOnFlush(t *testing.T) {
	m := newMemoryStore()
	task := entity.NewTask("doomed")
	m.Write(task)
	m.writes = nil

	repo := NewRepository(m)
	ctx := context.Background()

	if err := repo.Remove(ctx, entity.TypeTask, task.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := repo.Get(ctx, entity.TypeTask, task.ID); err == nil {
		t.Fatal("removed entity should be gone from memory")
	}
	if len(m.erased) != 0 {
		t.Fatal("erase should wait for flush")
	}

	if err := repo.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if len(m.erased) != 1 || m.erased[0] != toKey(entity.TypeTask, task.ID) {
		t.Fatalf("flush erased %v, want the removed task", m.erased)
	}
	if len(m.writes) != 0 {
		t.Fatalf("removing should not rewrite, wrote %v", m.writes)
	}
}

func TestPutReplacesInPlace(t *testing.T) {
	repo := NewRepository(newMemoryStore())
	ctx := context.Background()

	task := entity.NewTask("first draft")
	repo.Put(ctx, task)

	task.Description = "second draft"
	repo.Put(ctx, task)

	tasks, err := repo.Tasks(ctx)
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	if tasks[0].Description != "second draft" {
		t.Fatalf("got %q", tasks[0].Description)
	}
}

func TestActiveContext(t *testing.T) {
	m := newMemoryStore()

	inactive := entity.NewContext("home")
	active := entity.NewContext("work")
	active.Active = true
	deleted := entity.NewContext("old")
	deleted.Active = true
	now := entity.Now()
	deleted.Deleted = &now

	m.Write(inactive)
	m.Write(active)
	m.Write(deleted)

	repo := NewRepository(m)
	got, err := repo.ActiveContext(context.Background())
	if err != nil {
		t.Fatalf("active context: %v", err)
	}
	if got == nil || got.Name != "work" {
		t.Fatalf("got %+v, want the work context", got)
	}
}

func TestActiveContextNoneSet(t *testing.T) {
	repo := NewRepository(newMemoryStore())
	got, err := repo.ActiveContext(context.Background())
	if err != nil {
		t.Fatalf("active context: %v", err)
	}
	if got != nil {
		t.Fatalf("got %+v, want nil", got)
	}
}
