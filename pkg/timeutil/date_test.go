package timeutil

import (
	"testing"
	"time"
)

var anchor = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

func TestResolveDateTokenRelativeDays(t *testing.T) {
	cases := []struct {
		token string
		want  time.Time
	}{
		{"today", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
		{"yesterday", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)},
		{"tomorrow", time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)},
		{"+3", time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)},
		{"-2", time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, dayPrecision, err := ResolveDateToken(tc.token, anchor)
		if err != nil {
			t.Fatalf("%q: %v", tc.token, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("%q: got %v, want %v", tc.token, got, tc.want)
		}
		if !dayPrecision {
			t.Fatalf("%q should be day precision", tc.token)
		}
	}
}

func TestResolveDateTokenISODate(t *testing.T) {
	got, dayPrecision, err := ResolveDateToken("2026-12-24", anchor)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) || !dayPrecision {
		t.Fatalf("got %v (day=%v), want %v day precision", got, dayPrecision, want)
	}
}

func TestResolveDateTokenClockTime(t *testing.T) {
	got, dayPrecision, err := ResolveDateToken("09:15", anchor)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := time.Date(2026, 3, 10, 9, 15, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if dayPrecision {
		t.Fatal("clock time is instant precision")
	}
}

func TestResolveDateTokenRFC3339(t *testing.T) {
	got, dayPrecision, err := ResolveDateToken("2026-03-10T09:15:00Z", anchor)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if dayPrecision {
		t.Fatal("rfc3339 is instant precision")
	}
	if got.Hour() != 9 || got.Minute() != 15 {
		t.Fatalf("got %v, want 09:15", got)
	}
}

func TestResolveDateTokenRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "soonish", "2026-13-40"} {
		if _, _, err := ResolveDateToken(token, anchor); err == nil {
			t.Fatalf("%q should not resolve", token)
		}
	}
}

func TestStartOfDay(t *testing.T) {
	got := StartOfDay(anchor)
	if got.Hour() != 0 || got.Minute() != 0 || got.Day() != 10 {
		t.Fatalf("got %v, want midnight on the 10th", got)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 3, 10, 1, 0, 0, 0, time.Local)
	b := time.Date(2026, 3, 10, 23, 0, 0, 0, time.Local)
	if !SameDay(a, b) {
		t.Fatal("same calendar day")
	}
	if SameDay(a, b.AddDate(0, 0, 1)) {
		t.Fatal("different calendar days")
	}
}
