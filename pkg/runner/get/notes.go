package get

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/granular/pkg/entity"
	"tableflip.dev/granular/pkg/idmap"
	"tableflip.dev/granular/pkg/printers"
	"tableflip.dev/granular/pkg/query"
	"tableflip.dev/granular/pkg/store"
)

// Notes lists notes. Notes have no declarative sub-view type, so the
// table is drawn directly instead of through the composer.
type Notes struct {
	Repo   *store.Repository
	IDs    *idmap.Map
	Config store.Config

	IncludeDeleted bool
	NoHeader       bool
}

func (l *Notes) Do(ctx context.Context) error {
	all, err := l.Repo.Notes(ctx)
	if err != nil {
		return err
	}
	active, err := l.Repo.ActiveContext(ctx)
	if err != nil {
		return err
	}

	req := query.Request{
		Sort:           []string{"timestamp"},
		IncludeDeleted: l.IncludeDeleted || l.Config.IncludeDeleted(),
	}
	if active != nil {
		req.Context = active.Filter
	}
	notes, err := query.Run(all, req, time.Now())
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(notes))
	for _, note := range notes {
		id, err := l.IDs.Associate(entity.TypeNote, note.ID)
		if err != nil {
			return err
		}
		when := ""
		if note.Timestamp != nil {
			when = note.Timestamp.Local().Format("2006-01-02 15:04")
		}
		about := ""
		if note.ReferenceID != "" {
			about = referenceCell(l.IDs, note.ReferenceType, note.ReferenceID)
		}
		text := note.Text
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[:i] + " …"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", id), when, about, note.Project, text,
		})
	}

	pp := &printers.PrettyPrint{ShowHeader: l.Config.ShowHeader() && !l.NoHeader}
	name := ""
	if active != nil {
		name = active.Name
	}
	pp.Header(name, "notes")
	pp.Table([]string{"id", "timestamp", "about", "project", "text"}, rows, false)
	return nil
}

// referenceCell renders "t:3"-style pointers to the entity a note or log
// is attached to.
func referenceCell(ids *idmap.Map, refType, realID string) string {
	prefixes := map[string]string{
		string(entity.TypeTask):      "t",
		string(entity.TypeTimeAudit): "a",
		string(entity.TypeEvent):     "e",
	}
	prefix, ok := prefixes[refType]
	if !ok {
		return refType
	}
	id, err := ids.Associate(entity.Type(refType), realID)
	if err != nil {
		return refType
	}
	return fmt.Sprintf("%s:%d", prefix, id)
}
