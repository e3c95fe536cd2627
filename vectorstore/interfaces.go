package vectorstore

import "context"

// RangeCondition constrains a numeric payload field to an inclusive range.
// Nil bounds are open.
type RangeCondition struct {
	Field string
	GTE   *float64
	LTE   *float64
}

// MatchCondition requires a payload field to equal a value. When the stored
// field is a list, any element may match.
type MatchCondition struct {
	Field string
	Value any
}

// Filter constrains a vector search. All range conditions must hold
// (conjunctive); when match conditions are present, at least one must hold
// (disjunctive). This mirrors the must/should split of the Qdrant filter
// grammar.
type Filter struct {
	Ranges []RangeCondition
	Should []MatchCondition
}

// IsEmpty reports whether the filter has no conditions.
func (f *Filter) IsEmpty() bool {
	return f == nil || (len(f.Ranges) == 0 && len(f.Should) == 0)
}

// Point is one stored or retrieved vector entry. Search results carry the
// similarity score assigned by the store; upserts carry the vector.
type Point struct {
	ID      string
	Score   float64
	Vector  []float32
	Payload map[string]any
}

// Store is the capability interface for a vector database.
// Implementations must be thread-safe for concurrent use; one shared
// instance serves all in-flight requests.
type Store interface {
	// EnsureCollection creates the backing collection for vectors of the
	// given dimension if it does not already exist.
	EnsureCollection(ctx context.Context, dimension int) error

	// Upsert inserts or updates points. Points with an existing ID are
	// replaced, which makes repeated indexing of the same corpus idempotent.
	Upsert(ctx context.Context, points []Point) error

	// Search returns up to limit points most similar to the vector,
	// restricted by the filter, ordered by score descending.
	Search(ctx context.Context, vector []float32, filter *Filter, limit int) ([]Point, error)

	// Count returns the number of stored points.
	Count(ctx context.Context) (int, error)

	// Close releases resources held by the store.
	Close() error
}
