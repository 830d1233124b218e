package store

import (
	"context"
	"fmt"
	"sort"

	"tableflip.dev/granular/pkg/entity"
)

// Repository is the in-memory face of the store: per-type collections
// loaded lazily on first access, mutated in place, and flushed to disk
// exactly once at process exit. A single CLI invocation never runs
// concurrent commands, so no locking is needed.
type Repository struct {
	p       Persistence
	loaded  map[entity.Type][]entity.Entity
	dirty   map[entity.Type]map[string]bool
	removed map[entity.Type]map[string]bool
}

// NewRepository wraps a Persistence with lazy collection loading.
func NewRepository(p Persistence) *Repository {
	return &Repository{
		p:       p,
		loaded:  make(map[entity.Type][]entity.Entity),
		dirty:   make(map[entity.Type]map[string]bool),
		removed: make(map[entity.Type]map[string]bool),
	}
}

// collection returns the in-memory collection for t, loading it on first
// access and ordering it by creation time.
func (r *Repository) collection(ctx context.Context, t entity.Type) ([]entity.Entity, error) {
	if all, ok := r.loaded[t]; ok {
		return all, nil
	}
	all, err := r.p.ListAll(ctx, t)
	if err != nil {
		return nil, err
	}
	sortByCreated(all)
	r.loaded[t] = all
	return all, nil
}

func sortByCreated(all []entity.Entity) {
	created := func(e entity.Entity) int64 {
		rec := e.Properties()
		return rec["created"].Time.UnixNano()
	}
	sort.SliceStable(all, func(i, j int) bool {
		ci, cj := created(all[i]), created(all[j])
		if ci == cj {
			return all[i].RealID() < all[j].RealID()
		}
		return ci < cj
	})
}

// Get finds one entity by real id.
func (r *Repository) Get(ctx context.Context, t entity.Type, realID string) (entity.Entity, error) {
	all, err := r.collection(ctx, t)
	if err != nil {
		return nil, err
	}
	for _, e := range all {
		if e.RealID() == realID {
			return e, nil
		}
	}
	return nil, fmt.Errorf("store: no %s with id %s", t, realID)
}

// Put inserts or replaces an entity and marks it dirty for the next flush.
func (r *Repository) Put(ctx context.Context, e entity.Entity) error {
	t := e.EntityType()
	all, err := r.collection(ctx, t)
	if err != nil {
		return err
	}
	replaced := false
	for i, existing := range all {
		if existing.RealID() == e.RealID() {
			all[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		r.loaded[t] = append(all, e)
	}
	if r.dirty[t] == nil {
		r.dirty[t] = make(map[string]bool)
	}
	r.dirty[t][e.RealID()] = true
	return nil
}

// Remove hard-deletes an entity: drops it from memory and erases its file
// at the next flush. Soft deletion is a Put with the deleted timestamp set.
func (r *Repository) Remove(ctx context.Context, t entity.Type, realID string) error {
	all, err := r.collection(ctx, t)
	if err != nil {
		return err
	}
	kept := make([]entity.Entity, 0, len(all))
	for _, e := range all {
		if e.RealID() != realID {
			kept = append(kept, e)
		}
	}
	r.loaded[t] = kept
	if r.dirty[t] != nil {
		delete(r.dirty[t], realID)
	}
	if r.removed[t] == nil {
		r.removed[t] = make(map[string]bool)
	}
	r.removed[t][realID] = true
	return nil
}

// Flush writes every dirty entity and erases every removed one. The
// command layer defers this on all exit paths.
func (r *Repository) Flush(ctx context.Context) error {
	for t, ids := range r.dirty {
		if len(ids) == 0 {
			continue
		}
		all, err := r.collection(ctx, t)
		if err != nil {
			return err
		}
		for _, e := range all {
			if ids[e.RealID()] {
				if err := r.p.Write(e); err != nil {
					return err
				}
			}
		}
	}
	for t, ids := range r.removed {
		for id := range ids {
			if err := r.p.Erase(t, id); err != nil {
				return err
			}
		}
	}
	r.dirty = make(map[entity.Type]map[string]bool)
	r.removed = make(map[entity.Type]map[string]bool)
	return nil
}

// BasePath exposes the data directory, where sibling files (the synthetic
// id map, view definitions) live.
func (r *Repository) BasePath() string {
	return r.p.BasePath()
}

func typed[T entity.Entity](all []entity.Entity) []T {
	out := make([]T, 0, len(all))
	for _, e := range all {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func (r *Repository) Tasks(ctx context.Context) ([]*entity.Task, error) {
	all, err := r.collection(ctx, entity.TypeTask)
	if err != nil {
		return nil, err
	}
	return typed[*entity.Task](all), nil
}

func (r *Repository) Events(ctx context.Context) ([]*entity.Event, error) {
	all, err := r.collection(ctx, entity.TypeEvent)
	if err != nil {
		return nil, err
	}
	return typed[*entity.Event](all), nil
}

func (r *Repository) TimeAudits(ctx context.Context) ([]*entity.TimeAudit, error) {
	all, err := r.collection(ctx, entity.TypeTimeAudit)
	if err != nil {
		return nil, err
	}
	return typed[*entity.TimeAudit](all), nil
}

func (r *Repository) Timespans(ctx context.Context) ([]*entity.Timespan, error) {
	all, err := r.collection(ctx, entity.TypeTimespan)
	if err != nil {
		return nil, err
	}
	return typed[*entity.Timespan](all), nil
}

func (r *Repository) Notes(ctx context.Context) ([]*entity.Note, error) {
	all, err := r.collection(ctx, entity.TypeNote)
	if err != nil {
		return nil, err
	}
	return typed[*entity.Note](all), nil
}

func (r *Repository) Logs(ctx context.Context) ([]*entity.Log, error) {
	all, err := r.collection(ctx, entity.TypeLog)
	if err != nil {
		return nil, err
	}
	return typed[*entity.Log](all), nil
}

func (r *Repository) Trackers(ctx context.Context) ([]*entity.Tracker, error) {
	all, err := r.collection(ctx, entity.TypeTracker)
	if err != nil {
		return nil, err
	}
	return typed[*entity.Tracker](all), nil
}

func (r *Repository) Entries(ctx context.Context) ([]*entity.Entry, error) {
	all, err := r.collection(ctx, entity.TypeEntry)
	if err != nil {
		return nil, err
	}
	return typed[*entity.Entry](all), nil
}

func (r *Repository) Contexts(ctx context.Context) ([]*entity.Context, error) {
	all, err := r.collection(ctx, entity.TypeContext)
	if err != nil {
		return nil, err
	}
	return typed[*entity.Context](all), nil
}

// ActiveContext returns the active context, or nil when none is set.
func (r *Repository) ActiveContext(ctx context.Context) (*entity.Context, error) {
	contexts, err := r.Contexts(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range contexts {
		if c.Active && !c.IsDeleted() {
			return c, nil
		}
	}
	return nil, nil
}
