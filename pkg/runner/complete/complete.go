// Package complete provides the runner logic for closing tasks.
package complete

import (
	"context"
	"errors"

	"tableflip.dev/granular/pkg/entity"
	"tableflip.dev/granular/pkg/idmap"
	"tableflip.dev/granular/pkg/runner/get"
	"tableflip.dev/granular/pkg/store"
	"tableflip.dev/granular/pkg/view"
)

// Complete marks a task as completed.
type Complete struct {
	Repo   *store.Repository
	IDs    *idmap.Map
	Config store.Config

	ID int
}

func (n *Complete) Do(ctx context.Context) error {
	if n.Repo == nil {
		return errors.New("can not complete, no store")
	}
	realID, err := n.IDs.RealID(entity.TypeTask, n.ID)
	if err != nil {
		return err
	}
	e, err := n.Repo.Get(ctx, entity.TypeTask, realID)
	if err != nil {
		return err
	}
	task := e.(*entity.Task)
	if task.Completed != nil {
		return nil
	}
	now := entity.Now()
	task.Completed = &now
	task.Cancelled = nil
	task.NotCompleted = nil
	task.Touch()
	if err := n.Repo.Put(ctx, task); err != nil {
		return err
	}

	one := get.One{Repo: n.Repo, IDs: n.IDs, Config: n.Config, Kind: view.ViewTask, RealID: task.ID}
	return one.Do(ctx)
}
