package local

import "github.com/poiesic/evidex/vectorstore"

// matchesFilter applies range and match conditions to a payload.
// Range conditions are conjunctive; match conditions are disjunctive.
// A range condition on a missing or non-numeric field fails.
func matchesFilter(payload map[string]any, filter *vectorstore.Filter) bool {
	if filter.IsEmpty() {
		return true
	}

	for _, rc := range filter.Ranges {
		v, ok := numericField(payload, rc.Field)
		if !ok {
			return false
		}
		if rc.GTE != nil && v < *rc.GTE {
			return false
		}
		if rc.LTE != nil && v > *rc.LTE {
			return false
		}
	}

	if len(filter.Should) > 0 {
		matched := false
		for _, mc := range filter.Should {
			if fieldMatches(payload[mc.Field], mc.Value) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

func numericField(payload map[string]any, field string) (float64, bool) {
	switch v := payload[field].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case float32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// fieldMatches reports whether a payload value equals the wanted value.
// List payloads match if any element does, mirroring keyword matching
// semantics of server-side stores.
func fieldMatches(stored, want any) bool {
	if list, ok := stored.([]any); ok {
		for _, item := range list {
			if item == want {
				return true
			}
		}
		return false
	}
	if list, ok := stored.([]string); ok {
		for _, item := range list {
			if any(item) == want {
				return true
			}
		}
		return false
	}
	return stored == want
}
