// Package add creates new entities from command line input.
package add

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

// stampContext applies the active context's auto-added metadata to a new
// entity. An explicit project wins over the context's.
func stampContext(ctx context.Context, repo *store.Repository, project *string, tags *[]string) error {
	active, err := repo.ActiveContext(ctx)
	if err != nil || active == nil {
		return err
	}
	if *project == "" {
		*project = active.AutoAddedProject
	}
	for _, tag := range active.AutoAddedTags {
		seen := false
		for _, have := range *tags {
			if have == tag {
				seen = true
				break
			}
		}
		if !seen {
			*tags = append(*tags, tag)
		}
	}
	return nil
}

func resolveDate(token string, now time.Time) (*entity.Timestamp, error) {
	if token == "" {
		return nil, nil
	}
	at, _, err := timeutil.ResolveDateToken(token, now)
	if err != nil {
		return nil, err
	}
	return entity.At(at), nil
}

// Task creates a task.
type Task struct {
	Repo   *store.Repository
	IDs    *idmap.Map
	Config store.Config

	Description string
	Project     string
	Tags        []string
	Color       string
	Priority    int
	Estimate    string
	Scheduled   string
	Due         string
	Timespan    int
}

func (n *Task) Do(ctx context.Context) error {
	if n.Repo == nil {
		return errors.New("can not add, no store")
	}
	now := time.Now()

	t := entity.NewTask(n.Description)
	t.Color = n.Color
	if n.Priority > 0 {
		p := n.Priority
		t.Priority = &p
	}
	if n.Estimate != "" {
		d, err := timeutil.ParseDuration(n.Estimate)
		if err != nil {
			return err
		}
		t.Estimate = &entity.Duration{Duration: d}
	}
	var err error
	if t.Scheduled, err = resolveDate(n.Scheduled, now); err != nil {
		return err
	}
	if t.Due, err = resolveDate(n.Due, now); err != nil {
		return err
	}
	if n.Timespan > 0 {
		realID, err := n.IDs.RealID(entity.TypeTimespan, n.Timespan)
		if err != nil {
			return err
		}
		t.TimespanID = realID
	}
	t.Project, t.Tags = n.Project, n.Tags
	if err := stampContext(ctx, n.Repo, &t.Project, &t.Tags); err != nil {
		return err
	}
	if err := n.Repo.Put(ctx, t); err != nil {
		return err
	}

	one := get.One{Repo: n.Repo, IDs: n.IDs, Config: n.Config, Kind: view.ViewTask, RealID: t.ID}
	return one.Do(ctx)
}

// Event creates a calendar event.
type Event struct {
	Repo   *store.Repository
	IDs    *idmap.Map
	Config store.Config

	Title    string
	Project  string
	Tags     []string
	Color    string
	Start    string
	End      string
	AllDay   bool
	Location string
}

func (n *Event) Do(ctx context.Context) error {
	if n.Start == "" {
		return errors.New("an event needs a start, use --start")
	}
	now := time.Now()
	start, dayPrecision, err := timeutil.ResolveDateToken(n.Start, now)
	if err != nil {
		return err
	}

	e := entity.NewEvent(n.Title, entity.Timestamp{Time: start})
	e.AllDay = n.AllDay || dayPrecision
	e.Location = n.Location
	e.Color = n.Color
	if e.End, err = resolveDate(n.End, now); err != nil {
		return err
	}
	e.Project, e.Tags = n.Project, n.Tags
	if err := stampContext(ctx, n.Repo, &e.Project, &e.Tags); err != nil {
		return err
	}
	if err := n.Repo.Put(ctx, e); err != nil {
		return err
	}

	one := get.One{Repo: n.Repo, IDs: n.IDs, Config: n.Config, Kind: view.ViewEvent, RealID: e.ID}
	return one.Do(ctx)
}

// Timespan creates a timespan.
type Timespan struct {
	Repo   *store.Repository
	IDs    *idmap.Map
	Config store.Config

	Description string
	Projects    []string
	Tags        []string
	Color       string
	Start       string
	End         string
}

func (n *Timespan) Do(ctx context.Context) error {
	now := time.Now()

	s := entity.NewTimespan(n.Description)
	s.Projects = n.Projects
	s.Tags = n.Tags
	s.Color = n.Color
	var err error
	if s.Start, err = resolveDate(n.Start, now); err != nil {
		return err
	}
	if s.End, err = resolveDate(n.End, now); err != nil {
		return err
	}
	if err := n.Repo.Put(ctx, s); err != nil {
		return err
	}

	one := get.One{Repo: n.Repo, IDs: n.IDs, Config: n.Config, Kind: view.ViewTimespan, RealID: s.ID}
	return one.Do(ctx)
}

// reference resolves the display id of the entity a note or log attaches
// to. Zero ids mean unattached.
func reference(ids *idmap.Map, task, audit, event int) (string, string, error) {
	set := 0
	for _, n := range []int{task, audit, event} {
		if n > 0 {
			set++
		}
	}
	if set > 1 {
		return "", "", errors.New("use only one of --task, --audit, --event")
	}
	switch {
	case task > 0:
		realID, err := ids.RealID(entity.TypeTask, task)
		return realID, string(entity.TypeTask), err
	case audit > 0:
		realID, err := ids.RealID(entity.TypeTimeAudit, audit)
		return realID, string(entity.TypeTimeAudit), err
	case event > 0:
		realID, err := ids.RealID(entity.TypeEvent, event)
		return realID, string(entity.TypeEvent), err
	}
	return "", "", nil
}

// Note creates a note, optionally attached to another entity.
type Note struct {
	Repo   *store.Repository
	IDs    *idmap.Map
	Config store.Config

	Text    string
	Project string
	Tags    []string
	Color   string
	Task    int
	Audit   int
	Event   int
}

func (n *Note) Do(ctx context.Context) error {
	note := entity.NewNote(n.Text)
	note.Color = n.Color
	var err error
	if note.ReferenceID, note.ReferenceType, err = reference(n.IDs, n.Task, n.Audit, n.Event); err != nil {
		return err
	}
	note.Project, note.Tags = n.Project, n.Tags
	if err := stampContext(ctx, n.Repo, &note.Project, &note.Tags); err != nil {
		return err
	}
	if err := n.Repo.Put(ctx, note); err != nil {
		return err
	}

	id, err := n.IDs.Associate(entity.TypeNote, note.ID)
	if err != nil {
		return err
	}
	fmt.Printf("note %d added\n", id)
	return nil
}

// Log creates a log line, optionally attached to another entity.
type Log struct {
	Repo   *store.Repository
	IDs    *idmap.Map
	Config store.Config

	Text    string
	Project string
	Tags    []string
	Color   string
	Task    int
	Audit   int
	Event   int
}

func (n *Log) Do(ctx context.Context) error {
	l := entity.NewLog(n.Text)
	l.Color = n.Color
	var err error
	if l.ReferenceID, l.ReferenceType, err = reference(n.IDs, n.Task, n.Audit, n.Event); err != nil {
		return err
	}
	l.Project, l.Tags = n.Project, n.Tags
	if err := stampContext(ctx, n.Repo, &l.Project, &l.Tags); err != nil {
		return err
	}
	if err := n.Repo.Put(ctx, l); err != nil {
		return err
	}

	one := get.One{Repo: n.Repo, IDs: n.IDs, Config: n.Config, Kind: view.ViewLog, RealID: l.ID}
	return one.Do(ctx)
}
