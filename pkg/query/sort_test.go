package query

import (
	"testing"
	"time"
)

func rec(name string, priority Value, created time.Time) Record {
	return Record{
		"name":     String(name),
		"priority": priority,
		"created":  Time(created),
	}
}

func names(t *testing.T, records []Record) []string {
	t.Helper()
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r["name"].Str
	}
	return out
}

func assertOrder(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %q, want %q (full order %v)", i, got[i], want[i], got)
		}
	}
}

func TestSortSingleKey(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []Record{
		rec("b", Number(2), base),
		rec("a", Number(1), base),
		rec("c", Number(3), base),
	}
	ordered, err := Sort(records, []string{"priority"})
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	assertOrder(t, names(t, ordered), []string{"a", "b", "c"})
}

func TestSortDescending(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []Record{
		rec("a", Number(1), base),
		rec("c", Number(3), base),
		rec("b", Number(2), base),
	}
	ordered, err := Sort(records, []string{"desc priority"})
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	assertOrder(t, names(t, ordered), []string{"c", "b", "a"})
}

func TestSortNullsLastBothDirections(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []Record{
		rec("null1", NullNumber(), base),
		rec("low", Number(1), base),
		rec("null2", NullNumber(), base),
		rec("high", Number(9), base),
	}

	asc, err := Sort(records, []string{"priority"})
	if err != nil {
		t.Fatalf("sort asc: %v", err)
	}
	assertOrder(t, names(t, asc), []string{"low", "high", "null1", "null2"})

	desc, err := Sort(records, []string{"desc priority"})
	if err != nil {
		t.Fatalf("sort desc: %v", err)
	}
	assertOrder(t, names(t, desc), []string{"high", "low", "null1", "null2"})
}

func TestSortMultiKeyEarlierKeyWins(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
	}
	records := []Record{
		rec("p2-new", Number(2), day(9)),
		rec("p1-old", Number(1), day(1)),
		rec("p2-old", Number(2), day(2)),
		rec("p1-new", Number(1), day(8)),
	}
	ordered, err := Sort(records, []string{"priority", "desc created"})
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	assertOrder(t, names(t, ordered), []string{"p1-new", "p1-old", "p2-new", "p2-old"})
}

func TestSortIsStableForTies(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []Record{
		rec("first", Number(1), base),
		rec("second", Number(1), base),
		rec("third", Number(1), base),
	}
	ordered, err := Sort(records, []string{"priority"})
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	assertOrder(t, names(t, ordered), []string{"first", "second", "third"})
}

func TestSortUnknownKeyErrors(t *testing.T) {
	records := []Record{rec("a", Number(1), time.Now())}
	if _, err := Sort(records, []string{"nope"}); err == nil {
		t.Fatal("unknown sort key should error")
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []Record{
		rec("b", Number(2), base),
		rec("a", Number(1), base),
	}
	if _, err := Sort(records, []string{"priority"}); err != nil {
		t.Fatalf("sort: %v", err)
	}
	assertOrder(t, names(t, records), []string{"b", "a"})
}

func TestSortDescPrimaryKeepsNullsLast(t *testing.T) {
	day := func(y, d int) time.Time {
		return time.Date(y, 1, d, 0, 0, 0, 0, time.UTC)
	}
	records := []Record{
		{"name": String("p2-2024"), "priority": Number(2), "created": Time(day(2024, 1))},
		{"name": String("null-2024"), "priority": NullNumber(), "created": Time(day(2024, 2))},
		{"name": String("p2-2023"), "priority": Number(2), "created": Time(day(2023, 1))},
	}
	ordered, err := Sort(records, []string{"desc priority", "created"})
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	assertOrder(t, names(t, ordered), []string{"p2-2023", "p2-2024", "null-2024"})
}

func TestSortIsIdempotent(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []Record{
		rec("b", Number(2), base),
		rec("n", NullNumber(), base),
		rec("a", Number(1), base),
	}
	keys := []string{"priority"}
	once, err := Sort(records, keys)
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	twice, err := Sort(once, keys)
	if err != nil {
		t.Fatalf("resort: %v", err)
	}
	assertOrder(t, names(t, twice), names(t, once))
}
