package entity

import (
	"encoding/json"
	"time"
)

// Duration wraps time.Duration with string JSON round-tripping ("2h30m").
type Duration struct {
	time.Duration
}

func DurationOf(d time.Duration) *Duration {
	return &Duration{Duration: d}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}
