package qdrant

import "github.com/poiesic/evidex/vectorstore"

// buildFilter translates the store-agnostic filter into the Qdrant filter
// grammar. Range conditions become must clauses; match conditions become
// should clauses, which Qdrant treats as OR.
func buildFilter(filter *vectorstore.Filter) map[string]any {
	if filter.IsEmpty() {
		return nil
	}

	out := map[string]any{}

	if len(filter.Ranges) > 0 {
		must := make([]map[string]any, 0, len(filter.Ranges))
		for _, rc := range filter.Ranges {
			bounds := map[string]any{}
			if rc.GTE != nil {
				bounds["gte"] = *rc.GTE
			}
			if rc.LTE != nil {
				bounds["lte"] = *rc.LTE
			}
			must = append(must, map[string]any{
				"key":   rc.Field,
				"range": bounds,
			})
		}
		out["must"] = must
	}

	if len(filter.Should) > 0 {
		should := make([]map[string]any, 0, len(filter.Should))
		for _, mc := range filter.Should {
			should = append(should, map[string]any{
				"key":   mc.Field,
				"match": map[string]any{"value": mc.Value},
			})
		}
		out["should"] = should
	}

	return out
}
