// Package contexts manages named working contexts.
package contexts

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"tableflip.dev/granular/pkg/entity"
	"tableflip.dev/granular/pkg/idmap"
	"tableflip.dev/granular/pkg/printers"
	"tableflip.dev/granular/pkg/query"
	"tableflip.dev/granular/pkg/store"
)

// Add creates a context.
type Add struct {
	Repo   *store.Repository
	IDs    *idmap.Map
	Config store.Config

	Name        string
	Filter      string
	AutoTags    []string
	AutoProject string
	Activate    bool
}

func (n *Add) Do(ctx context.Context) error {
	c := entity.NewContext(n.Name)
	if n.Filter != "" {
		f := &query.Filter{}
		if err := yaml.Unmarshal([]byte(n.Filter), f); err != nil {
			return fmt.Errorf("bad filter expression: %w", err)
		}
		c.Filter = f
	}
	c.AutoAddedTags = n.AutoTags
	c.AutoAddedProject = n.AutoProject
	if err := n.Repo.Put(ctx, c); err != nil {
		return err
	}
	if n.Activate {
		activate := Activate{Repo: n.Repo, IDs: n.IDs, Config: n.Config, Name: c.Name}
		return activate.Do(ctx)
	}
	fmt.Printf("context %q added\n", c.Name)
	return nil
}

// Activate makes one context active and deactivates the rest. An empty
// name deactivates every context.
type Activate struct {
	Repo   *store.Repository
	IDs    *idmap.Map
	Config store.Config

	Name string
}

func (n *Activate) Do(ctx context.Context) error {
	all, err := n.Repo.Contexts(ctx)
	if err != nil {
		return err
	}

	var target *entity.Context
	if n.Name != "" {
		for _, c := range all {
			if !c.IsDeleted() && strings.EqualFold(c.Name, n.Name) {
				target = c
				break
			}
		}
		if target == nil {
			return fmt.Errorf("no context named %q", n.Name)
		}
	}

	for _, c := range all {
		if c.Active && c != target {
			c.Active = false
			c.Touch()
			if err := n.Repo.Put(ctx, c); err != nil {
				return err
			}
		}
	}
	if target == nil {
		fmt.Println("context cleared")
		return nil
	}
	if !target.Active {
		target.Active = true
		target.Touch()
		if err := n.Repo.Put(ctx, target); err != nil {
			return err
		}
	}
	fmt.Printf("context %q active\n", target.Name)
	return nil
}

// List prints every context, flagging the active one.
type List struct {
	Repo   *store.Repository
	IDs    *idmap.Map
	Config store.Config

	IncludeDeleted bool
}

func (n *List) Do(ctx context.Context) error {
	all, err := n.Repo.Contexts(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(all))
	for _, c := range all {
		if c.IsDeleted() && !n.IncludeDeleted && !n.Config.IncludeDeleted() {
			continue
		}
		id, err := n.IDs.Associate(entity.TypeContext, c.ID)
		if err != nil {
			return err
		}
		active := ""
		if c.Active {
			active = "*"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", id),
			active,
			c.Name,
			filterSummary(c.Filter),
			c.AutoAddedProject,
			strings.Join(c.AutoAddedTags, ", "),
		})
	}

	pp := &printers.PrettyPrint{ShowHeader: n.Config.ShowHeader()}
	pp.Header("", "contexts")
	pp.Table([]string{"id", "active", "name", "filter", "auto project", "auto tags"}, rows, false)
	return nil
}

// filterSummary renders a compact one-line description of a filter tree.
func filterSummary(f *query.Filter) string {
	if f == nil {
		return ""
	}
	switch f.Type {
	case query.FilterAnd, query.FilterOr:
		parts := make([]string, 0, len(f.Predicates))
		for _, child := range f.Predicates {
			parts = append(parts, filterSummary(child))
		}
		return fmt.Sprintf("%s(%s)", f.Type, strings.Join(parts, ", "))
	case query.FilterNot:
		return fmt.Sprintf("not(%s)", filterSummary(f.Predicate))
	case query.FilterEmpty:
		return fmt.Sprintf("empty(%s)", f.Property)
	case query.FilterTag, query.FilterTagRegex, query.FilterProject, query.FilterProjectRegex:
		return fmt.Sprintf("%s %s", f.Type, f.Pattern)
	default:
		return fmt.Sprintf("%s %s %s", f.Type, f.Property, f.Pattern)
	}
}
