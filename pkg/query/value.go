// Package query implements the filter, sort, and selection pipeline that
// turns raw entity collections into display-ready slices.
package query

import (
	"fmt"
	"strings"
	"time"
)

// Kind discriminates the value types a record property can hold.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindTime
	KindDuration
	KindTags
	KindBool
)

// Value is one typed property value. Null marks a property that exists on
// the schema but carries no value for this record.
type Value struct {
	Kind Kind
	Null bool
	Str  string
	Num  float64
	Time time.Time
	Dur  time.Duration
	Tags []string
	Bool bool
}

// Record maps property names to values. Every record carries its full
// schema: absent values are present with Null set, so a missing key means
// the property does not exist for the entity type at all.
type Record map[string]Value

// Properties is the record contract the pipeline consumes.
type Properties interface {
	Properties() Record
	IsDeleted() bool
}

func String(s string) Value {
	return Value{Kind: KindString, Null: s == "", Str: s}
}

func Number(f float64) Value {
	return Value{Kind: KindNumber, Num: f}
}

func NullNumber() Value {
	return Value{Kind: KindNumber, Null: true}
}

func NumberPtr(p *int) Value {
	if p == nil {
		return NullNumber()
	}
	return Number(float64(*p))
}

func Time(t time.Time) Value {
	return Value{Kind: KindTime, Null: t.IsZero(), Time: t}
}

func NullTime() Value {
	return Value{Kind: KindTime, Null: true}
}

func Duration(d time.Duration) Value {
	return Value{Kind: KindDuration, Dur: d}
}

func NullDuration() Value {
	return Value{Kind: KindDuration, Null: true}
}

func Tags(tags []string) Value {
	return Value{Kind: KindTags, Null: len(tags) == 0, Tags: tags}
}

func Bool(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// Compare orders two non-null values of the same kind. Null handling is the
// sorter's job, not Compare's.
func Compare(a, b Value) int {
	switch a.Kind {
	case KindNumber:
		switch {
		case a.Num < b.Num:
			return -1
		case a.Num > b.Num:
			return 1
		}
		return 0
	case KindTime:
		switch {
		case a.Time.Before(b.Time):
			return -1
		case a.Time.After(b.Time):
			return 1
		}
		return 0
	case KindDuration:
		switch {
		case a.Dur < b.Dur:
			return -1
		case a.Dur > b.Dur:
			return 1
		}
		return 0
	case KindBool:
		switch {
		case !a.Bool && b.Bool:
			return -1
		case a.Bool && !b.Bool:
			return 1
		}
		return 0
	case KindTags:
		return strings.Compare(strings.Join(a.Tags, ","), strings.Join(b.Tags, ","))
	default:
		return strings.Compare(a.Str, b.Str)
	}
}

// Display renders a value for table cells. Times render as dates;
// clock-level precision belongs to the specialized views.
func (v Value) Display() string {
	if v.Null {
		return ""
	}
	switch v.Kind {
	case KindNumber:
		if v.Num == float64(int64(v.Num)) {
			return fmt.Sprintf("%d", int64(v.Num))
		}
		return fmt.Sprintf("%g", v.Num)
	case KindTime:
		return v.Time.Local().Format("2006-01-02")
	case KindDuration:
		h := int(v.Dur.Hours())
		m := int(v.Dur.Minutes()) % 60
		return fmt.Sprintf("%d:%02d", h, m)
	case KindTags:
		return strings.Join(v.Tags, ", ")
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	default:
		return v.Str
	}
}
