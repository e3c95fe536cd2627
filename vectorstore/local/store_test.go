package local

import (
	"context"
	"testing"

	"github.com/poiesic/evidex/vectorstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open("", true)
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestEnsureCollection(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	t.Run("invalid dimension", func(t *testing.T) {
		err := store.EnsureCollection(ctx, 0)
		assert.ErrorIs(t, err, vectorstore.ErrInvalidDimension)
	})

	t.Run("creates and is idempotent", func(t *testing.T) {
		require.NoError(t, store.EnsureCollection(ctx, 4))
		require.NoError(t, store.EnsureCollection(ctx, 4))
	})

	t.Run("rejects conflicting dimension", func(t *testing.T) {
		err := store.EnsureCollection(ctx, 8)
		assert.ErrorIs(t, err, vectorstore.ErrDimensionMismatch)
	})
}

func TestUpsertDimensionCheck(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.EnsureCollection(ctx, 3))

	err := store.Upsert(ctx, []vectorstore.Point{
		{ID: "a", Vector: []float32{1, 0}},
	})
	assert.ErrorIs(t, err, vectorstore.ErrDimensionMismatch)
}

func TestSearchOrdering(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.EnsureCollection(ctx, 3))

	points := []vectorstore.Point{
		{ID: "exact", Vector: []float32{1, 0, 0}, Payload: map[string]any{"title": "exact"}},
		{ID: "close", Vector: []float32{0.9, 0.1, 0}, Payload: map[string]any{"title": "close"}},
		{ID: "far", Vector: []float32{0, 0, 1}, Payload: map[string]any{"title": "far"}},
	}
	require.NoError(t, store.Upsert(ctx, points))

	results, err := store.Search(ctx, []float32{1, 0, 0}, nil, 10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "exact", results[0].ID)
	assert.Equal(t, "close", results[1].ID)
	assert.Equal(t, "far", results[2].ID)
	assert.InDelta(t, 1.0, results[0].Score, 0.0001)
	assert.Greater(t, results[1].Score, results[2].Score)
}

func TestSearchLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.EnsureCollection(ctx, 2))

	require.NoError(t, store.Upsert(ctx, []vectorstore.Point{
		{ID: "a", Vector: []float32{1, 0}},
		{ID: "b", Vector: []float32{0.9, 0.1}},
		{ID: "c", Vector: []float32{0.8, 0.2}},
	}))

	results, err := store.Search(ctx, []float32{1, 0}, nil, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchRangeFilter(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.EnsureCollection(ctx, 2))

	require.NoError(t, store.Upsert(ctx, []vectorstore.Point{
		{ID: "recent", Vector: []float32{1, 0}, Payload: map[string]any{"year": 2023}},
		{ID: "old", Vector: []float32{1, 0}, Payload: map[string]any{"year": 2010}},
		{ID: "undated", Vector: []float32{1, 0}, Payload: map[string]any{"title": "x"}},
	}))

	filter := &vectorstore.Filter{
		Ranges: []vectorstore.RangeCondition{{Field: "year", GTE: floatPtr(2018)}},
	}
	results, err := store.Search(ctx, []float32{1, 0}, filter, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "recent", results[0].ID)
}

func TestSearchShouldFilter(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.EnsureCollection(ctx, 2))

	require.NoError(t, store.Upsert(ctx, []vectorstore.Point{
		{ID: "meta", Vector: []float32{1, 0}, Payload: map[string]any{
			"publicationtypes": []any{"MetaAnalysis", "JournalArticle"},
		}},
		{ID: "rct", Vector: []float32{1, 0}, Payload: map[string]any{
			"publicationtypes": []any{"RandomizedControlledTrial"},
		}},
		{ID: "case", Vector: []float32{1, 0}, Payload: map[string]any{
			"publicationtypes": []any{"CaseReport"},
		}},
	}))

	filter := &vectorstore.Filter{
		Should: []vectorstore.MatchCondition{
			{Field: "publicationtypes", Value: "MetaAnalysis"},
			{Field: "publicationtypes", Value: "RandomizedControlledTrial"},
		},
	}
	results, err := store.Search(ctx, []float32{1, 0}, filter, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	ids := []string{results[0].ID, results[1].ID}
	assert.Contains(t, ids, "meta")
	assert.Contains(t, ids, "rct")
}

func TestUpsertOverwrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.EnsureCollection(ctx, 2))

	require.NoError(t, store.Upsert(ctx, []vectorstore.Point{
		{ID: "a", Vector: []float32{1, 0}, Payload: map[string]any{"title": "v1"}},
	}))
	require.NoError(t, store.Upsert(ctx, []vectorstore.Point{
		{ID: "a", Vector: []float32{1, 0}, Payload: map[string]any{"title": "v2"}},
	}))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	results, err := store.Search(ctx, []float32{1, 0}, nil, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "v2", results[0].Payload["title"])
}

func TestCountEmpty(t *testing.T) {
	store := openTestStore(t)
	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{2, 0}), 0.0001)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 0.0001)
	assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{1, 1}))
}
