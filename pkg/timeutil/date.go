package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ResolveDateToken turns a relative or absolute date token into an instant.
// Supported tokens: "today", "yesterday", "tomorrow", signed or bare day
// offsets ("+3", "-2", "14"), ISO dates ("2006-01-02"), RFC3339 timestamps,
// and bare clock times ("15:04") combined with the current date.
//
// The second result reports day precision: true when the token names a
// whole day rather than an exact instant.
func ResolveDateToken(value string, now time.Time) (time.Time, bool, error) {
	token := strings.TrimSpace(strings.ToLower(value))
	today := StartOfDay(now)

	switch token {
	case "":
		return time.Time{}, false, fmt.Errorf("empty date token")
	case "today":
		return today, true, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), true, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), true, nil
	}

	if offset, err := strconv.Atoi(token); err == nil {
		return today.AddDate(0, 0, offset), true, nil
	}

	if t, err := time.ParseInLocation("2006-01-02", token, now.Location()); err == nil {
		return t, true, nil
	}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(value)); err == nil {
		return t, false, nil
	}
	if t, err := time.ParseInLocation("15:04", token, now.Location()); err == nil {
		return time.Date(now.Year(), now.Month(), now.Day(),
			t.Hour(), t.Minute(), 0, 0, now.Location()), false, nil
	}

	return time.Time{}, false, fmt.Errorf("unrecognized date token %q", value)
}

// SameDay reports whether two instants fall on the same calendar day in
// the local zone.
func SameDay(a, b time.Time) bool {
	al, bl := a.Local(), b.Local()
	return al.Year() == bl.Year() && al.Month() == bl.Month() && al.Day() == bl.Day()
}
