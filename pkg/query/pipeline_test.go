package query

import (
	"testing"
	"time"
)

// item is a minimal pipeline input used instead of real entities to keep
// the package free of import cycles.
type item struct {
	name    string
	project string
	prio    *int
	deleted bool
}

func (i *item) IsDeleted() bool { return i.deleted }

func (i *item) Properties() Record {
	return Record{
		"name":     String(i.name),
		"project":  String(i.project),
		"priority": NumberPtr(i.prio),
	}
}

func intp(n int) *int { return &n }

func itemNames(items []*item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.name
	}
	return out
}

func TestRunExcludesSoftDeleted(t *testing.T) {
	items := []*item{
		{name: "live"},
		{name: "gone", deleted: true},
	}
	kept, err := Run(items, Request{}, time.Now())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(kept) != 1 || kept[0].name != "live" {
		t.Fatalf("got %v, want [live]", itemNames(kept))
	}
}

func TestRunIncludeDeletedKeepsEverything(t *testing.T) {
	items := []*item{
		{name: "live"},
		{name: "gone", deleted: true},
	}
	kept, err := Run(items, Request{IncludeDeleted: true}, time.Now())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(kept) != 2 {
		t.Fatalf("got %v, want both items", itemNames(kept))
	}
}

func TestRunLayersContextUnderFilter(t *testing.T) {
	items := []*item{
		{name: "work-a", project: "work", prio: intp(1)},
		{name: "work-b", project: "work", prio: intp(3)},
		{name: "home", project: "home", prio: intp(1)},
	}
	req := Request{
		Context: &Filter{Type: FilterProject, Pattern: "work"},
		Filter:  &Filter{Type: FilterNum, Property: "priority", Pattern: "<=2"},
	}
	kept, err := Run(items, req, time.Now())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(kept) != 1 || kept[0].name != "work-a" {
		t.Fatalf("got %v, want [work-a]", itemNames(kept))
	}
}

func TestRunSortsSurvivors(t *testing.T) {
	items := []*item{
		{name: "c", prio: intp(3)},
		{name: "a", prio: intp(1)},
		{name: "none"},
		{name: "b", prio: intp(2)},
	}
	kept, err := Run(items, Request{Sort: []string{"priority"}}, time.Now())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []string{"a", "b", "c", "none"}
	got := itemNames(kept)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestRunPropagatesFilterErrors(t *testing.T) {
	items := []*item{{name: "a"}}
	req := Request{Filter: &Filter{Type: FilterStr, Property: "missing", Pattern: "x"}}
	if _, err := Run(items, req, time.Now()); err == nil {
		t.Fatal("unknown property should fail the pass")
	}
}
