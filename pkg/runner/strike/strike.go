// Package strike removes items from the working set: cancelling tasks
// and soft- or hard-deleting entities.
package strike

import (
	"context"
	"fmt"

	"tableflip.dev/granular/pkg/entity"
	"tableflip.dev/granular/pkg/idmap"
	"tableflip.dev/granular/pkg/runner/get"
	"tableflip.dev/granular/pkg/store"
	"tableflip.dev/granular/pkg/view"
)

// Cancel marks a task as cancelled.
type Cancel struct {
	Repo   *store.Repository
	IDs    *idmap.Map
	Config store.Config

	ID int
}

func (n *Cancel) Do(ctx context.Context) error {
	realID, err := n.IDs.RealID(entity.TypeTask, n.ID)
	if err != nil {
		return err
	}
	e, err := n.Repo.Get(ctx, entity.TypeTask, realID)
	if err != nil {
		return err
	}
	task := e.(*entity.Task)
	if task.Cancelled == nil {
		now := entity.Now()
		task.Cancelled = &now
		task.Completed = nil
		task.NotCompleted = nil
		task.Touch()
		if err := n.Repo.Put(ctx, task); err != nil {
			return err
		}
	}

	one := get.One{Repo: n.Repo, IDs: n.IDs, Config: n.Config, Kind: view.ViewTask, RealID: task.ID}
	return one.Do(ctx)
}

// toucher is the mutable face shared by every entity type.
type toucher interface {
	entity.Entity
	Touch()
}

// Delete soft-deletes an entity of any type by display id. Hard erases
// the record from disk instead.
type Delete struct {
	Repo   *store.Repository
	IDs    *idmap.Map
	Config store.Config

	Kind entity.Type
	ID   int
	Hard bool
}

func (n *Delete) Do(ctx context.Context) error {
	realID, err := n.IDs.RealID(n.Kind, n.ID)
	if err != nil {
		return err
	}
	if n.Hard {
		if err := n.Repo.Remove(ctx, n.Kind, realID); err != nil {
			return err
		}
		fmt.Printf("%s %d erased\n", n.Kind, n.ID)
		return nil
	}

	e, err := n.Repo.Get(ctx, n.Kind, realID)
	if err != nil {
		return err
	}
	now := entity.Now()
	switch v := e.(type) {
	case *entity.Task:
		v.Deleted = &now
	case *entity.Event:
		v.Deleted = &now
	case *entity.TimeAudit:
		v.Deleted = &now
	case *entity.Timespan:
		v.Deleted = &now
	case *entity.Note:
		v.Deleted = &now
	case *entity.Log:
		v.Deleted = &now
	case *entity.Tracker:
		v.Deleted = &now
	case *entity.Entry:
		v.Deleted = &now
	case *entity.Context:
		v.Deleted = &now
	default:
		return fmt.Errorf("can not delete %s", n.Kind)
	}
	if t, ok := e.(toucher); ok {
		t.Touch()
	}
	if err := n.Repo.Put(ctx, e); err != nil {
		return err
	}

	if kind, tabular := tabularKind(n.Kind); tabular {
		one := get.One{Repo: n.Repo, IDs: n.IDs, Config: n.Config, Kind: kind, RealID: realID}
		return one.Do(ctx)
	}
	fmt.Printf("%s %d deleted\n", n.Kind, n.ID)
	return nil
}

func tabularKind(t entity.Type) (view.ViewType, bool) {
	switch t {
	case entity.TypeTask:
		return view.ViewTask, true
	case entity.TypeEvent:
		return view.ViewEvent, true
	case entity.TypeTimeAudit:
		return view.ViewTimeAudit, true
	case entity.TypeTimespan:
		return view.ViewTimespan, true
	case entity.TypeLog:
		return view.ViewLog, true
	}
	return "", false
}
