// Package get renders entity listings through the view composer.
package get

import (
	"context"
	"time"

	"tableflip.dev/granular/pkg/idmap"
	"tableflip.dev/granular/pkg/query"
	"tableflip.dev/granular/pkg/store"
	"tableflip.dev/granular/pkg/view"
)

// List renders one tabular listing of a single entity type. It is the
// runner behind every "<noun> list" command; the named compound views go
// through the views runner instead.
type List struct {
	Repo   *store.Repository
	IDs    *idmap.Map
	Config store.Config

	Kind view.ViewType
	Name string

	Columns        []string
	Sort           []string
	IncludeDeleted bool
	NoHeader       bool
	NoColor        bool
	NoWrap         bool
}

func (l *List) Do(ctx context.Context) error {
	c := &view.Composer{Repo: l.Repo, IDs: l.IDs, Config: l.Config, Now: time.Now()}
	cv := &view.CompoundView{
		Name: l.Name,
		Views: []*view.SubView{{
			ViewType:       l.Kind,
			Columns:        l.Columns,
			Sort:           l.Sort,
			IncludeDeleted: l.IncludeDeleted,
			NoHeader:       l.NoHeader,
			NoColor:        l.NoColor,
			NoWrap:         l.NoWrap,
		}},
	}
	return c.Run(ctx, cv)
}

// One renders a single entity as a one-row table, used by the mutation
// runners to echo what they changed.
type One struct {
	Repo   *store.Repository
	IDs    *idmap.Map
	Config store.Config

	Kind   view.ViewType
	RealID string
}

func (o *One) Do(ctx context.Context) error {
	c := &view.Composer{Repo: o.Repo, IDs: o.IDs, Config: o.Config, Now: time.Now()}
	cv := &view.CompoundView{
		Name: string(o.Kind),
		Views: []*view.SubView{{
			ViewType: o.Kind,
			Filter: &query.Filter{
				Type:     query.FilterStr,
				Property: "id",
				Pattern:  "equals_case " + o.RealID,
			},
			IncludeDeleted: true,
			NoHeader:       true,
		}},
	}
	return c.Run(ctx, cv)
}
