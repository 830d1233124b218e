// Package views runs the named compound views defined in views.yaml.
package views

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/granular/pkg/idmap"
	"tableflip.dev/granular/pkg/printers"
	"tableflip.dev/granular/pkg/store"
	"tableflip.dev/granular/pkg/view"
)

// Show renders one named compound view.
type Show struct {
	Repo   *store.Repository
	IDs    *idmap.Map
	Config store.Config

	Name string
}

func (n *Show) Do(ctx context.Context) error {
	all, err := view.LoadViews(n.Repo.BasePath())
	if err != nil {
		return err
	}
	for _, cv := range all {
		if cv.Name == n.Name {
			c := &view.Composer{Repo: n.Repo, IDs: n.IDs, Config: n.Config, Now: time.Now()}
			return c.Run(ctx, cv)
		}
	}
	return fmt.Errorf("no view named %q, try: granular view list", n.Name)
}

// List prints the available compound views.
type List struct {
	Repo   *store.Repository
	Config store.Config
}

func (n *List) Do(ctx context.Context) error {
	all, err := view.LoadViews(n.Repo.BasePath())
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(all))
	for _, cv := range all {
		kinds := make(map[view.ViewType]int)
		order := make([]view.ViewType, 0, len(cv.Views))
		for _, sv := range cv.Views {
			if kinds[sv.ViewType] == 0 {
				order = append(order, sv.ViewType)
			}
			kinds[sv.ViewType]++
		}
		summary := ""
		for i, t := range order {
			if i > 0 {
				summary += ", "
			}
			summary += string(t)
			if kinds[t] > 1 {
				summary += fmt.Sprintf(" x%d", kinds[t])
			}
		}
		rows = append(rows, []string{cv.Name, fmt.Sprintf("%d", len(cv.Views)), summary})
	}

	pp := &printers.PrettyPrint{ShowHeader: n.Config.ShowHeader()}
	pp.Header("", "views")
	pp.Table([]string{"name", "sub-views", "composition"}, rows, false)
	return nil
}

// Names returns the defined view names, used for shell completion.
func Names(basePath string) []string {
	all, err := view.LoadViews(basePath)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(all))
	for _, cv := range all {
		names = append(names, cv.Name)
	}
	return names
}
