package view

import (
	"os"
	"testing"
)

func writeViews(t *testing.T, content string) string {
	t.Helper()
	base := t.TempDir()
	if err := os.WriteFile(ViewsPath(base), []byte(content), 0o644); err != nil {
		t.Fatalf("write views file: %v", err)
	}
	return base
}

func TestLoadViews(t *testing.T) {
	base := writeViews(t, `
custom_views:
  - name: morning
    views:
      - view_type: header
        markdown: "# morning"
      - view_type: task
        columns: [id, description, priority]
        sort: [priority, "desc created"]
        filter:
          filter_type: project
          filter: work
  - name: week
    views:
      - view_type: gantt
        granularity: week
`)
	views, err := LoadViews(base)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d views, want 2", len(views))
	}
	if views[0].Name != "morning" || views[1].Name != "week" {
		t.Fatalf("got names %q, %q", views[0].Name, views[1].Name)
	}
	task := views[0].Views[1]
	if task.ViewType != ViewTask || len(task.Columns) != 3 {
		t.Fatalf("task sub-view not parsed: %+v", task)
	}
	if task.Filter == nil || task.Filter.Pattern != "work" {
		t.Fatalf("filter not parsed: %+v", task.Filter)
	}
	if views[1].Views[0].Granularity != GranularityWeek {
		t.Fatalf("granularity not parsed: %q", views[1].Views[0].Granularity)
	}
}

func TestLoadViewsMissingFile(t *testing.T) {
	views, err := LoadViews(t.TempDir())
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if views != nil {
		t.Fatalf("got %d views, want none", len(views))
	}
}

func TestLoadViewsRejectsBadYAML(t *testing.T) {
	base := writeViews(t, "custom_views: [\n")
	if _, err := LoadViews(base); err == nil {
		t.Fatal("malformed yaml should error")
	}
}

func TestLoadViewsValidatesSpecs(t *testing.T) {
	base := writeViews(t, `
custom_views:
  - name: broken
    views:
      - view_type: pie_chart
`)
	if _, err := LoadViews(base); err == nil {
		t.Fatal("unknown view_type should fail the load")
	}
}
