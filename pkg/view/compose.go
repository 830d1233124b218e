package view

import (
	"context"
	"time"

	"tableflip.dev/granular/pkg/entity"
	"tableflip.dev/granular/pkg/idmap"
	"tableflip.dev/granular/pkg/printers"
	"tableflip.dev/granular/pkg/query"
	"tableflip.dev/granular/pkg/store"
)

// Composer executes compound views. Each sub-view runs the query pipeline
// (or a specialized aggregator) and renders in specification order; any
// sub-view failure aborts the whole compound render.
type Composer struct {
	Repo   *store.Repository
	IDs    *idmap.Map
	Config store.Config
	// Now is captured once per invocation so relative dates resolve
	// consistently across sub-views.
	Now time.Time
}

// Run renders one compound view.
func (c *Composer) Run(ctx context.Context, cv *CompoundView) error {
	if err := cv.Validate(); err != nil {
		return err
	}
	active, err := c.Repo.ActiveContext(ctx)
	if err != nil {
		return err
	}

	for _, sv := range cv.Views {
		if err := c.runSubView(ctx, cv, sv, active); err != nil {
			return err
		}
	}
	return nil
}

func (c *Composer) runSubView(ctx context.Context, cv *CompoundView, sv *SubView, active *entity.Context) error {
	switch sv.ViewType {
	case ViewTask:
		return c.runTaskView(ctx, cv, sv, active)
	case ViewTimeAudit:
		return c.runTimeAuditView(ctx, cv, sv, active)
	case ViewEvent:
		return c.runEventView(ctx, cv, sv, active)
	case ViewTimespan:
		return c.runTimespanView(ctx, cv, sv, active)
	case ViewLog:
		return c.runLogView(ctx, cv, sv, active)
	case ViewMarkdown:
		return c.runMarkdownView(sv)
	case ViewHeader:
		pp := c.printer(sv)
		pp.Header(contextName(active), cv.Name)
		return nil
	case ViewSpace:
		pp := c.printer(sv)
		pp.NewLine()
		return nil
	case ViewAgenda:
		return c.runAgendaView(ctx, cv, sv, active)
	case ViewGantt:
		return c.runGanttView(ctx, cv, sv, active)
	case ViewTasksHeatmap:
		return c.runTasksHeatmapView(ctx, cv, sv, active)
	case ViewStory:
		return c.runStoryView(ctx, cv, sv, active)
	}
	return nil
}

// printer builds the pretty printer for one sub-view, honoring both the
// global show_header flag and the sub-view's no_header override.
func (c *Composer) printer(sv *SubView) *printers.PrettyPrint {
	show := c.Config.ShowHeader() && !sv.NoHeader
	return &printers.PrettyPrint{ShowHeader: show}
}

// request assembles the pipeline request for a sub-view, layering the
// active context's filter under the sub-view's own.
func (c *Composer) request(sv *SubView, active *entity.Context) query.Request {
	req := query.Request{
		Filter:         sv.Filter,
		Sort:           sv.Sort,
		IncludeDeleted: sv.IncludeDeleted || c.Config.IncludeDeleted(),
	}
	if active != nil && active.Filter != nil {
		req.Context = active.Filter
	}
	return req
}

// useColor reports whether cells should carry color for this sub-view.
func (c *Composer) useColor(sv *SubView) bool {
	return c.Config.UseColor() && !sv.NoColor
}

func contextName(active *entity.Context) string {
	if active == nil {
		return ""
	}
	return active.Name
}
