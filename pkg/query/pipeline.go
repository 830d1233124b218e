package query

import "time"

// Request describes one pipeline pass over a collection: which records
// survive, and in what order. Column projection happens at render time so
// that synthetic id assignment stays a display concern.
type Request struct {
	// Context is the active context's filter, applied before Filter.
	Context *Filter
	Filter  *Filter
	Sort    []string
	// IncludeDeleted keeps soft-deleted records in the result.
	IncludeDeleted bool
}

// Run filters and orders a collection. Steps in fixed order: soft-delete
// exclusion, context filter, sub-view filter, sort.
func Run[T Properties](items []T, req Request, now time.Time) ([]T, error) {
	kept := make([]T, 0, len(items))
	ev := NewEvaluator(now)

	for _, item := range items {
		if !req.IncludeDeleted && item.IsDeleted() {
			continue
		}
		rec := item.Properties()
		if req.Context != nil {
			ok, err := ev.Evaluate(req.Context, rec)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		if req.Filter != nil {
			ok, err := ev.Evaluate(req.Filter, rec)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		kept = append(kept, item)
	}

	if len(req.Sort) == 0 {
		return kept, nil
	}
	return SortItems(kept, req.Sort)
}
