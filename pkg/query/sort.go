package query

import (
	"sort"
	"strings"
)

// sortKey is one parsed "[asc|desc] property" token.
type sortKey struct {
	property   string
	descending bool
}

func parseSortKey(token string) sortKey {
	key := sortKey{property: strings.TrimSpace(token)}
	if direction, column, found := strings.Cut(key.property, " "); found {
		key.property = strings.TrimSpace(column)
		key.descending = direction == "desc"
	}
	return key
}

// Sort orders records by the given sort keys. The first key is the primary
// one: keys are applied least-significant first with a stable sort, so
// earlier keys win. For every key, records with a null value sort after all
// valued records regardless of direction. The input slice is not mutated.
func Sort(records []Record, sortKeys []string) ([]Record, error) {
	ordered := make([]Record, len(records))
	copy(ordered, records)

	for i := len(sortKeys) - 1; i >= 0; i-- {
		key := parseSortKey(sortKeys[i])

		valued := make([]Record, 0, len(ordered))
		nulls := make([]Record, 0)
		for _, rec := range ordered {
			v, ok := rec[key.property]
			if !ok {
				return nil, &UnknownPropertyError{Property: key.property}
			}
			if v.Null {
				nulls = append(nulls, rec)
			} else {
				valued = append(valued, rec)
			}
		}

		sort.SliceStable(valued, func(a, b int) bool {
			cmp := Compare(valued[a][key.property], valued[b][key.property])
			if key.descending {
				return cmp > 0
			}
			return cmp < 0
		})

		ordered = append(valued, nulls...)
	}

	return ordered, nil
}

// SortItems orders typed entities using the same rules as Sort.
func SortItems[T Properties](items []T, sortKeys []string) ([]T, error) {
	type keyed struct {
		item T
		rec  Record
	}
	pairs := make([]keyed, len(items))
	records := make([]Record, len(items))
	for i, item := range items {
		rec := item.Properties()
		pairs[i] = keyed{item: item, rec: rec}
		records[i] = rec
	}

	for i := len(sortKeys) - 1; i >= 0; i-- {
		key := parseSortKey(sortKeys[i])

		valued := make([]keyed, 0, len(pairs))
		nulls := make([]keyed, 0)
		for _, p := range pairs {
			v, ok := p.rec[key.property]
			if !ok {
				return nil, &UnknownPropertyError{Property: key.property}
			}
			if v.Null {
				nulls = append(nulls, p)
			} else {
				valued = append(valued, p)
			}
		}

		sort.SliceStable(valued, func(a, b int) bool {
			cmp := Compare(valued[a].rec[key.property], valued[b].rec[key.property])
			if key.descending {
				return cmp > 0
			}
			return cmp < 0
		})

		pairs = append(valued, nulls...)
	}

	ordered := make([]T, len(pairs))
	for i, p := range pairs {
		ordered[i] = p.item
	}
	return ordered, nil
}
