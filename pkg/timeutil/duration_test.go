package timeutil

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"30m", 30 * time.Minute},
		{"2h", 2 * time.Hour},
		{"1d", 24 * time.Hour},
		{"1w", 7 * 24 * time.Hour},
		{"1w2d6h", 7*24*time.Hour + 2*24*time.Hour + 6*time.Hour},
		{"2 hours", 2 * time.Hour},
		{"90 mins", 90 * time.Minute},
	}
	for _, tc := range cases {
		got, err := ParseDuration(tc.in)
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: got %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseDurationRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "fast", "3 fortnights", "-2h", "0m"} {
		if _, err := ParseDuration(in); err == nil {
			t.Fatalf("%q should not parse", in)
		}
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{90 * time.Minute, "1:30"},
		{25 * time.Hour, "25:00"},
		{5 * time.Minute, "0:05"},
	}
	for _, tc := range cases {
		if got := FormatClock(tc.in); got != tc.want {
			t.Fatalf("%v: got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAgePicksLargestWholeUnit(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		since time.Duration
		want  string
	}{
		{30 * time.Minute, "30m"},
		{5 * time.Hour, "5h"},
		{3 * 24 * time.Hour, "3d"},
		{15 * 24 * time.Hour, "2w"},
	}
	for _, tc := range cases {
		if got := Age(now.Add(-tc.since), now); got != tc.want {
			t.Fatalf("%v ago: got %q, want %q", tc.since, got, tc.want)
		}
	}
}

func TestAgeClampsFuture(t *testing.T) {
	now := time.Now()
	if got := Age(now.Add(time.Hour), now); got != "0m" {
		t.Fatalf("future instants clamp to zero, got %q", got)
	}
}
