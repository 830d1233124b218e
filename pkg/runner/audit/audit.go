// Package audit starts and stops time audits.
package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/granular/pkg/entity"
	"tableflip.dev/granular/pkg/idmap"
	"tableflip.dev/granular/pkg/runner/get"
	"tableflip.dev/granular/pkg/store"
	"tableflip.dev/granular/pkg/timeutil"
	"tableflip.dev/granular/pkg/view"
)

// running finds the open audit, if any.
func running(ctx context.Context, repo *store.Repository) (*entity.TimeAudit, error) {
	audits, err := repo.TimeAudits(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range audits {
		if a.Start != nil && a.End == nil && !a.IsDeleted() {
			return a, nil
		}
	}
	return nil, nil
}

// Start begins a new time audit. A still-running audit is stopped first;
// only one audit runs at a time.
type Start struct {
	Repo   *store.Repository
	IDs    *idmap.Map
	Config store.Config

	Description string
	Project     string
	Tags        []string
	Color       string
	Task        int
}

func (n *Start) Do(ctx context.Context) error {
	if n.Repo == nil {
		return errors.New("can not start, no store")
	}
	now := entity.Now()

	if open, err := running(ctx, n.Repo); err != nil {
		return err
	} else if open != nil {
		open.End = &now
		open.Touch()
		if err := n.Repo.Put(ctx, open); err != nil {
			return err
		}
		id, _ := n.IDs.Associate(entity.TypeTimeAudit, open.ID)
		fmt.Printf("stopped running audit %d (%s)\n", id, timeutil.FormatClock(open.Elapsed()))
	}

	a := entity.NewTimeAudit(n.Description)
	a.Start = &now
	a.Color = n.Color
	if n.Task > 0 {
		realID, err := n.IDs.RealID(entity.TypeTask, n.Task)
		if err != nil {
			return err
		}
		a.TaskID = realID
		// Starting work on a task marks it started.
		if e, err := n.Repo.Get(ctx, entity.TypeTask, realID); err == nil {
			task := e.(*entity.Task)
			if task.Started == nil {
				task.Started = &now
				task.Touch()
				if err := n.Repo.Put(ctx, task); err != nil {
					return err
				}
			}
		}
	}
	a.Project, a.Tags = n.Project, n.Tags
	if active, err := n.Repo.ActiveContext(ctx); err != nil {
		return err
	} else if active != nil {
		if a.Project == "" {
			a.Project = active.AutoAddedProject
		}
		for _, tag := range active.AutoAddedTags {
			found := false
			for _, have := range a.Tags {
				if have == tag {
					found = true
					break
				}
			}
			if !found {
				a.Tags = append(a.Tags, tag)
			}
		}
	}
	if err := n.Repo.Put(ctx, a); err != nil {
		return err
	}

	one := get.One{Repo: n.Repo, IDs: n.IDs, Config: n.Config, Kind: view.ViewTimeAudit, RealID: a.ID}
	return one.Do(ctx)
}

// Stop closes the running time audit.
type Stop struct {
	Repo   *store.Repository
	IDs    *idmap.Map
	Config store.Config

	// At optionally backdates the stop instant.
	At string
}

func (n *Stop) Do(ctx context.Context) error {
	open, err := running(ctx, n.Repo)
	if err != nil {
		return err
	}
	if open == nil {
		return errors.New("no time audit is running")
	}

	end := entity.Now()
	if n.At != "" {
		at, _, err := timeutil.ResolveDateToken(n.At, time.Now())
		if err != nil {
			return err
		}
		if at.Before(open.Start.Time) {
			return fmt.Errorf("stop instant %s is before the audit started", n.At)
		}
		end = entity.Timestamp{Time: at.UTC()}
	}
	open.End = &end
	open.Touch()
	if err := n.Repo.Put(ctx, open); err != nil {
		return err
	}

	one := get.One{Repo: n.Repo, IDs: n.IDs, Config: n.Config, Kind: view.ViewTimeAudit, RealID: open.ID}
	return one.Do(ctx)
}
