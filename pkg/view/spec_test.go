package view

import (
	"strings"
	"testing"
)

func TestValidateAcceptsKnownTypes(t *testing.T) {
	cv := &CompoundView{
		Name: "morning",
		Views: []*SubView{
			{ViewType: ViewHeader, Markdown: "# morning"},
			{ViewType: ViewTask, Columns: []string{"id", "description"}},
			{ViewType: ViewSpace},
			{ViewType: ViewGantt, Granularity: GranularityWeek},
		},
	}
	if err := cv.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateRequiresName(t *testing.T) {
	cv := &CompoundView{Views: []*SubView{{ViewType: ViewTask}}}
	if err := cv.Validate(); err == nil {
		t.Fatal("nameless view should be rejected")
	}
}

func TestValidateRejectsNilSubView(t *testing.T) {
	cv := &CompoundView{Name: "broken", Views: []*SubView{nil}}
	if err := cv.Validate(); err == nil {
		t.Fatal("empty sub-view should be rejected")
	}
}

func TestValidateRejectsUnknownViewType(t *testing.T) {
	cv := &CompoundView{Name: "broken", Views: []*SubView{{ViewType: "pie_chart"}}}
	err := cv.Validate()
	if err == nil {
		t.Fatal("unknown view_type should be rejected")
	}
	if !strings.Contains(err.Error(), "pie_chart") {
		t.Fatalf("error should name the offending type, got %v", err)
	}
}

func TestValidateRejectsUnknownGranularity(t *testing.T) {
	cv := &CompoundView{
		Name:  "broken",
		Views: []*SubView{{ViewType: ViewGantt, Granularity: "fortnight"}},
	}
	if err := cv.Validate(); err == nil {
		t.Fatal("unknown granularity should be rejected")
	}
}
