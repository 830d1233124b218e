package query

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/granular/pkg/timeutil"
)

// FilterType discriminates filter tree nodes. A node must only carry the
// fields its type calls for.
type FilterType string

const (
	FilterAnd          FilterType = "and"
	FilterOr           FilterType = "or"
	FilterNot          FilterType = "not"
	FilterEmpty        FilterType = "empty"
	FilterStr          FilterType = "str"
	FilterStrRegex     FilterType = "str_regex"
	FilterNum          FilterType = "num"
	FilterDate         FilterType = "date"
	FilterTag          FilterType = "tag"
	FilterTagRegex     FilterType = "tag_regex"
	FilterProject      FilterType = "project"
	FilterProjectRegex FilterType = "project_regex"
)

// Filter is one node of a filter expression tree. The same struct backs
// every node type; Type decides which fields are read.
type Filter struct {
	Type       FilterType `json:"filter_type" yaml:"filter_type"`
	Property   string     `json:"property,omitempty" yaml:"property,omitempty"`
	Pattern    string     `json:"filter,omitempty" yaml:"filter,omitempty"`
	Predicates []*Filter  `json:"predicates,omitempty" yaml:"predicates,omitempty"`
	Predicate  *Filter    `json:"predicate,omitempty" yaml:"predicate,omitempty"`
}

func And(children ...*Filter) *Filter {
	return &Filter{Type: FilterAnd, Predicates: children}
}

func Or(children ...*Filter) *Filter {
	return &Filter{Type: FilterOr, Predicates: children}
}

func Not(child *Filter) *Filter {
	return &Filter{Type: FilterNot, Predicate: child}
}

// Evaluator evaluates filter trees against records. The reference time is
// captured once so a multi-entity pass resolves relative date tokens
// consistently.
type Evaluator struct {
	now time.Time
}

func NewEvaluator(now time.Time) *Evaluator {
	return &Evaluator{now: now}
}

// Evaluate reports whether the record matches the filter tree.
func (ev *Evaluator) Evaluate(f *Filter, rec Record) (bool, error) {
	if f == nil {
		return true, nil
	}
	switch f.Type {
	case FilterAnd:
		for _, child := range f.Predicates {
			ok, err := ev.Evaluate(child, rec)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	case FilterOr:
		for _, child := range f.Predicates {
			ok, err := ev.Evaluate(child, rec)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case FilterNot:
		if f.Predicate == nil || len(f.Predicates) > 0 {
			return false, &MalformedFilterError{Reason: "not requires exactly one predicate"}
		}
		ok, err := ev.Evaluate(f.Predicate, rec)
		if err != nil {
			return false, err
		}
		return !ok, nil
	case FilterEmpty:
		if f.Property == "" {
			return true, nil
		}
		v, ok := rec[f.Property]
		if !ok {
			return false, &UnknownPropertyError{Property: f.Property}
		}
		return v.Null, nil
	case FilterStr:
		return ev.evalStr(f.Property, f.Pattern, rec)
	case FilterStrRegex:
		return ev.evalStrRegex(f.Property, f.Pattern, rec)
	case FilterNum:
		return ev.evalNum(f, rec)
	case FilterDate:
		return ev.evalDate(f, rec)
	case FilterTag:
		return anyTag(rec, func(tag string) bool { return tag == f.Pattern }), nil
	case FilterTagRegex:
		pattern, err := regexp.Compile(f.Pattern)
		if err != nil {
			return false, &MalformedFilterError{Reason: "invalid tag regex: " + err.Error()}
		}
		return anyTag(rec, pattern.MatchString), nil
	case FilterProject:
		return ev.evalProject(f.Pattern, rec, false)
	case FilterProjectRegex:
		return ev.evalProject(f.Pattern, rec, true)
	}
	return false, &MalformedFilterError{Reason: "unknown filter_type " + string(f.Type)}
}

// String filter instructions. The bare pattern defaults to a
// case-insensitive substring match.
const (
	insEquals       = "equals"
	insEqualsCase   = "equals_case"
	insContains     = "contains"
	insContainsCase = "contains_case"
)

func splitStrInstruction(pattern string) (string, string) {
	trimmed := strings.TrimSpace(pattern)
	ins, rest, found := strings.Cut(trimmed, " ")
	if found {
		switch ins {
		case insEquals, insEqualsCase, insContains, insContainsCase:
			return ins, strings.TrimSpace(rest)
		}
	}
	return insContains, trimmed
}

func matchStr(value, pattern string) bool {
	ins, want := splitStrInstruction(pattern)
	switch ins {
	case insEquals:
		return strings.EqualFold(value, want)
	case insEqualsCase:
		return value == want
	case insContainsCase:
		return strings.Contains(value, want)
	default:
		return strings.Contains(strings.ToLower(value), strings.ToLower(want))
	}
}

func (ev *Evaluator) evalStr(property, pattern string, rec Record) (bool, error) {
	v, ok := rec[property]
	if !ok {
		return false, &UnknownPropertyError{Property: property}
	}
	if v.Null {
		return false, nil
	}
	return matchStr(v.Display(), pattern), nil
}

func (ev *Evaluator) evalStrRegex(property, pattern string, rec Record) (bool, error) {
	v, ok := rec[property]
	if !ok {
		return false, &UnknownPropertyError{Property: property}
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, &MalformedFilterError{Reason: "invalid regex: " + err.Error()}
	}
	if v.Null {
		return false, nil
	}
	return re.MatchString(v.Display()), nil
}

// splitComparison parses "[op] value" where op is one of the comparison
// tokens. A missing operator means equality.
func splitComparison(expr string) (string, string, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return "", "", &MalformedFilterError{Reason: "empty comparison"}
	}
	for _, op := range []string{"<=", ">=", "!=", "<", ">", "="} {
		if strings.HasPrefix(trimmed, op) {
			value := strings.TrimSpace(trimmed[len(op):])
			if value == "" {
				return "", "", &MalformedFilterError{Reason: "comparison " + trimmed + " has no value"}
			}
			return op, value, nil
		}
	}
	return "=", trimmed, nil
}

func (ev *Evaluator) evalNum(f *Filter, rec Record) (bool, error) {
	v, ok := rec[f.Property]
	if !ok {
		return false, &UnknownPropertyError{Property: f.Property}
	}
	op, raw, err := splitComparison(f.Pattern)
	if err != nil {
		return false, err
	}
	want, perr := strconv.ParseFloat(raw, 64)
	if perr != nil {
		return false, &MalformedFilterError{Reason: "not a number: " + raw}
	}
	if v.Null {
		return false, nil
	}
	var have float64
	switch v.Kind {
	case KindNumber:
		have = v.Num
	case KindDuration:
		have = v.Dur.Seconds()
	default:
		return false, nil
	}
	switch op {
	case "<":
		return have < want, nil
	case "<=":
		return have <= want, nil
	case ">":
		return have > want, nil
	case ">=":
		return have >= want, nil
	case "!=":
		return have != want, nil
	default:
		return have == want, nil
	}
}

func (ev *Evaluator) evalDate(f *Filter, rec Record) (bool, error) {
	v, ok := rec[f.Property]
	if !ok {
		return false, &UnknownPropertyError{Property: f.Property}
	}
	op, raw, err := splitComparison(f.Pattern)
	if err != nil {
		return false, err
	}
	ref, dayPrecision, perr := timeutil.ResolveDateToken(raw, ev.now)
	if perr != nil {
		return false, &MalformedFilterError{Reason: "bad date token " + raw + ": " + perr.Error()}
	}
	if v.Null || v.Kind != KindTime {
		return false, nil
	}
	have := v.Time
	// Equality against a day-precision token matches the whole day.
	onDay := func() bool {
		return !have.Before(ref) && have.Before(ref.Add(24*time.Hour))
	}
	switch op {
	case "<":
		return have.Before(ref), nil
	case "<=":
		if dayPrecision {
			return have.Before(ref.Add(24 * time.Hour)), nil
		}
		return !have.After(ref), nil
	case ">":
		if dayPrecision {
			return !have.Before(ref.Add(24 * time.Hour)), nil
		}
		return have.After(ref), nil
	case ">=":
		return !have.Before(ref), nil
	case "!=":
		if dayPrecision {
			return !onDay(), nil
		}
		return !have.Equal(ref), nil
	default:
		if dayPrecision {
			return onDay(), nil
		}
		return have.Equal(ref), nil
	}
}

func anyTag(rec Record, match func(string) bool) bool {
	v, ok := rec["tags"]
	if !ok || v.Null {
		return false
	}
	for _, tag := range v.Tags {
		if match(tag) {
			return true
		}
	}
	return false
}

func (ev *Evaluator) evalProject(pattern string, rec Record, asRegex bool) (bool, error) {
	var re *regexp.Regexp
	if asRegex {
		var err error
		re, err = regexp.Compile(pattern)
		if err != nil {
			return false, &MalformedFilterError{Reason: "invalid project regex: " + err.Error()}
		}
	}
	match := func(s string) bool {
		if asRegex {
			return re.MatchString(s)
		}
		return matchStr(s, pattern)
	}
	matched := false
	if v, ok := rec["project"]; ok {
		matched = !v.Null && match(v.Str)
	} else if v, ok := rec["projects"]; ok {
		if !v.Null {
			for _, p := range v.Tags {
				if match(p) {
					matched = true
					break
				}
			}
		}
	} else {
		return false, &UnknownPropertyError{Property: "project"}
	}
	return matched, nil
}
