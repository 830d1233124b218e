package query

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func record() Record {
	return Record{
		"description": String("write the quarterly report"),
		"project":     String("work"),
		"tags":        Tags([]string{"deep", "writing"}),
		"priority":    Number(2),
		"estimate":    Duration(90 * time.Minute),
		"due":         Time(time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)),
		"completed":   NullTime(),
	}
}

func mustEval(t *testing.T, f *Filter, rec Record) bool {
	t.Helper()
	ok, err := NewEvaluator(testNow).Evaluate(f, rec)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	return ok
}

func TestEvaluateStrDefaultsToContains(t *testing.T) {
	f := &Filter{Type: FilterStr, Property: "description", Pattern: "QUARTERLY"}
	if !mustEval(t, f, record()) {
		t.Fatal("case-insensitive substring should match")
	}
}

func TestEvaluateStrInstructions(t *testing.T) {
	rec := record()
	cases := []struct {
		pattern string
		want    bool
	}{
		{"equals write the quarterly report", true},
		{"equals WRITE THE QUARTERLY REPORT", true},
		{"equals_case WRITE THE QUARTERLY REPORT", false},
		{"contains_case QUARTERLY", false},
		{"contains_case quarterly", true},
		{"equals quarterly", false},
	}
	for _, tc := range cases {
		f := &Filter{Type: FilterStr, Property: "description", Pattern: tc.pattern}
		if got := mustEval(t, f, rec); got != tc.want {
			t.Fatalf("pattern %q: got %v, want %v", tc.pattern, got, tc.want)
		}
	}
}

func TestEvaluateNotInverts(t *testing.T) {
	inner := &Filter{Type: FilterStr, Property: "project", Pattern: "work"}
	if !mustEval(t, inner, record()) {
		t.Fatal("inner filter should match")
	}
	if mustEval(t, Not(inner), record()) {
		t.Fatal("not should invert a match")
	}
	if !mustEval(t, Not(Not(inner)), record()) {
		t.Fatal("double negation should restore the match")
	}
}

func TestEvaluateEmptyCompoundDuality(t *testing.T) {
	// An and with no predicates holds vacuously; an or with none fails.
	if !mustEval(t, And(), record()) {
		t.Fatal("empty and should match")
	}
	if mustEval(t, Or(), record()) {
		t.Fatal("empty or should not match")
	}
}

func TestEvaluateEmptyFilter(t *testing.T) {
	if !mustEval(t, &Filter{Type: FilterEmpty, Property: "completed"}, record()) {
		t.Fatal("null property should read as empty")
	}
	if mustEval(t, &Filter{Type: FilterEmpty, Property: "project"}, record()) {
		t.Fatal("valued property should not read as empty")
	}
}

func TestEvaluateNumComparisons(t *testing.T) {
	rec := record()
	cases := []struct {
		pattern string
		want    bool
	}{
		{"2", true},
		{"=2", true},
		{"<=2", true},
		{"<2", false},
		{">1", true},
		{"!=2", false},
	}
	for _, tc := range cases {
		f := &Filter{Type: FilterNum, Property: "priority", Pattern: tc.pattern}
		if got := mustEval(t, f, rec); got != tc.want {
			t.Fatalf("pattern %q: got %v, want %v", tc.pattern, got, tc.want)
		}
	}
}

func TestEvaluateNumOnDurationUsesSeconds(t *testing.T) {
	f := &Filter{Type: FilterNum, Property: "estimate", Pattern: ">=5400"}
	if !mustEval(t, f, record()) {
		t.Fatal("duration should compare as seconds")
	}
}

func TestEvaluateNumOnStringIsFalse(t *testing.T) {
	f := &Filter{Type: FilterNum, Property: "description", Pattern: ">0"}
	if mustEval(t, f, record()) {
		t.Fatal("numeric comparison on a string property should be false, not an error")
	}
}

func TestEvaluateNumOnNullIsFalse(t *testing.T) {
	rec := record()
	rec["priority"] = NullNumber()
	f := &Filter{Type: FilterNum, Property: "priority", Pattern: ">=0"}
	if mustEval(t, f, rec) {
		t.Fatal("null never satisfies a comparison")
	}
}

func TestEvaluateDateDayPrecision(t *testing.T) {
	rec := Record{
		"due": Time(time.Date(2026, 3, 12, 15, 30, 0, 0, time.UTC)),
	}
	eq := &Filter{Type: FilterDate, Property: "due", Pattern: "2026-03-12"}
	if !mustEval(t, eq, rec) {
		t.Fatal("day token should match any instant that day")
	}
	lt := &Filter{Type: FilterDate, Property: "due", Pattern: "<=2026-03-12"}
	if !mustEval(t, lt, rec) {
		t.Fatal("<= day token should include the whole day")
	}
	gt := &Filter{Type: FilterDate, Property: "due", Pattern: ">2026-03-12"}
	if mustEval(t, gt, rec) {
		t.Fatal("> day token should exclude the whole day")
	}
}

func TestEvaluateDateRelativeToken(t *testing.T) {
	rec := Record{"due": Time(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))}
	f := &Filter{Type: FilterDate, Property: "due", Pattern: "today"}
	if !mustEval(t, f, rec) {
		t.Fatal("today should resolve against the evaluator's reference time")
	}
}

func TestEvaluateTag(t *testing.T) {
	if !mustEval(t, &Filter{Type: FilterTag, Pattern: "deep"}, record()) {
		t.Fatal("tag should match")
	}
	if mustEval(t, &Filter{Type: FilterTag, Pattern: "dee"}, record()) {
		t.Fatal("tag match is exact, not substring")
	}
	if !mustEval(t, &Filter{Type: FilterTagRegex, Pattern: "^wri"}, record()) {
		t.Fatal("tag regex should match")
	}
}

func TestEvaluateProjectAcrossShapes(t *testing.T) {
	single := Record{"project": String("work")}
	if !mustEval(t, &Filter{Type: FilterProject, Pattern: "work"}, single) {
		t.Fatal("scalar project should match")
	}
	multi := Record{"projects": Tags([]string{"home", "garden"})}
	if !mustEval(t, &Filter{Type: FilterProject, Pattern: "garden"}, multi) {
		t.Fatal("project list should match any element")
	}
	if !mustEval(t, &Filter{Type: FilterProjectRegex, Pattern: "^gar"}, multi) {
		t.Fatal("project regex should match list elements")
	}
}

func TestEvaluateUnknownPropertyErrors(t *testing.T) {
	f := &Filter{Type: FilterStr, Property: "nope", Pattern: "x"}
	_, err := NewEvaluator(testNow).Evaluate(f, record())
	var unknown *UnknownPropertyError
	if !errors.As(err, &unknown) {
		t.Fatalf("want UnknownPropertyError, got %v", err)
	}
}

func TestEvaluateMalformedNot(t *testing.T) {
	_, err := NewEvaluator(testNow).Evaluate(&Filter{Type: FilterNot}, record())
	var malformed *MalformedFilterError
	if !errors.As(err, &malformed) {
		t.Fatalf("want MalformedFilterError, got %v", err)
	}
}

func TestEvaluateNilFilterMatchesEverything(t *testing.T) {
	if !mustEval(t, nil, record()) {
		t.Fatal("nil filter should match")
	}
}

func TestEvaluateNestedScenario(t *testing.T) {
	// Open work items due this week, excluding anything tagged someday.
	f := And(
		&Filter{Type: FilterProject, Pattern: "work"},
		&Filter{Type: FilterEmpty, Property: "completed"},
		&Filter{Type: FilterDate, Property: "due", Pattern: "<=2026-03-15"},
		Not(&Filter{Type: FilterTag, Pattern: "someday"}),
	)
	if !mustEval(t, f, record()) {
		t.Fatal("record should survive the nested filter")
	}

	rec := record()
	rec["tags"] = Tags([]string{"someday"})
	if mustEval(t, f, rec) {
		t.Fatal("someday tag should be excluded")
	}
}

func TestEvaluateDescriptionAndTagConjunction(t *testing.T) {
	f := And(
		&Filter{Type: FilterStr, Property: "description", Pattern: "apple"},
		&Filter{Type: FilterTag, Pattern: "urgent"},
	)
	urgent := Record{
		"description": String("apple pie"),
		"tags":        Tags([]string{"urgent", "home"}),
	}
	if !mustEval(t, f, urgent) {
		t.Fatal("urgent apple task should match")
	}
	calm := Record{
		"description": String("apple pie"),
		"tags":        Tags([]string{"home"}),
	}
	if mustEval(t, f, calm) {
		t.Fatal("missing tag should fail the conjunction")
	}
}
