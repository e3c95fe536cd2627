package search

import (
	"testing"

	"github.com/poiesic/evidex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func TestMetadataBonus(t *testing.T) {
	r := NewReranker()

	tests := []struct {
		name     string
		year     *int
		cites    *int
		expected float64
	}{
		{"no metadata", nil, nil, 0.0},
		{"very recent", intPtr(2023), nil, 0.2},
		{"recent", intPtr(2019), nil, 0.1},
		{"old", intPtr(2010), nil, 0.0},
		{"highly cited", nil, intPtr(150), 0.2},
		{"moderately cited", nil, intPtr(25), 0.1},
		{"barely cited", nil, intPtr(3), 0.0},
		{"recency and citations stack across dimensions", intPtr(2023), intPtr(150), 0.4},
		{"tiers do not stack within a dimension", intPtr(2023), intPtr(9), 0.2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := &core.Result{Year: tc.year, CitationCount: tc.cites}
			assert.InDelta(t, tc.expected, r.MetadataBonus(res), 0.0001)
		})
	}
}

func TestRerankLexicalFloor(t *testing.T) {
	r := NewReranker()
	results := []*core.Result{
		{PaperId: "relevant", Title: "Berberine improves insulin resistance", VectorScore: 0.7},
		{PaperId: "unrelated", Title: "Coral reef acidification", VectorScore: 0.9},
	}

	reranked := r.Rerank("berberine insulin resistance", results, 0.05)

	require.Len(t, reranked, 1)
	assert.Equal(t, "relevant", reranked[0].PaperId)
}

func TestRerankFloorIsStrict(t *testing.T) {
	r := NewReranker()
	results := []*core.Result{
		{PaperId: "at-floor", Title: "berberine supplementation", VectorScore: 0.5},
	}

	// One of two query content terms: lexical = 0.5 + 0.1 = 0.6.
	reranked := r.Rerank("berberine magnesium", results, 0.6)
	require.Len(t, reranked, 1, "score equal to floor must survive")

	reranked = r.Rerank("berberine magnesium", results, 0.60001)
	assert.Empty(t, reranked, "score below floor must be excluded")
}

func TestRerankCombinedScore(t *testing.T) {
	r := NewReranker()
	results := []*core.Result{
		{
			PaperId:       "a",
			Title:         "Berberine improves insulin resistance",
			VectorScore:   0.8,
			Year:          intPtr(2023),
			CitationCount: intPtr(120),
		},
	}

	reranked := r.Rerank("berberine insulin resistance", results, 0.0)
	require.Len(t, reranked, 1)

	res := reranked[0]
	assert.Greater(t, res.LexicalScore, 0.0)
	// combined = vector + 0.2 * (lexical + 0.2 recency + 0.2 citations)
	expected := 0.8 + 0.2*(res.LexicalScore+0.4)
	assert.InDelta(t, expected, res.CombinedScore, 0.0001)
	assert.GreaterOrEqual(t, res.CombinedScore, res.VectorScore)
}

func TestRerankRecencyBreaksVectorTie(t *testing.T) {
	r := NewReranker()
	title := "Berberine improves insulin resistance"
	older := &core.Result{PaperId: "old", Title: title, VectorScore: 0.85, Year: intPtr(2019), CitationCount: intPtr(0)}
	newer := &core.Result{PaperId: "new", Title: title, VectorScore: 0.85, Year: intPtr(2023), CitationCount: intPtr(0)}

	reranked := r.Rerank("berberine insulin resistance", []*core.Result{older, newer}, 0.0)

	require.Len(t, reranked, 2)
	assert.Equal(t, "new", reranked[0].PaperId)
	assert.Greater(t, reranked[0].CombinedScore, reranked[1].CombinedScore)
}

func TestRerankSortedDescending(t *testing.T) {
	r := NewReranker()
	results := []*core.Result{
		{PaperId: "a", Title: "berberine", VectorScore: 0.5},
		{PaperId: "b", Title: "berberine glucose", VectorScore: 0.9},
		{PaperId: "c", Title: "berberine glucose metabolism", VectorScore: 0.7},
	}

	reranked := r.Rerank("berberine glucose metabolism", results, 0.0)

	require.Len(t, reranked, 3)
	for i := 1; i < len(reranked); i++ {
		assert.GreaterOrEqual(t, reranked[i-1].CombinedScore, reranked[i].CombinedScore)
	}
}

func TestRerankStableForTies(t *testing.T) {
	r := NewReranker()
	// Identical titles and metadata give identical combined scores;
	// retrieval order must be preserved.
	results := []*core.Result{
		{PaperId: "first", Title: "berberine", VectorScore: 0.8},
		{PaperId: "second", Title: "berberine", VectorScore: 0.8},
		{PaperId: "third", Title: "berberine", VectorScore: 0.8},
	}

	reranked := r.Rerank("berberine", results, 0.0)

	require.Len(t, reranked, 3)
	assert.Equal(t, "first", reranked[0].PaperId)
	assert.Equal(t, "second", reranked[1].PaperId)
	assert.Equal(t, "third", reranked[2].PaperId)
}

func TestRerankIdempotent(t *testing.T) {
	r := NewReranker()
	results := []*core.Result{
		{PaperId: "a", Title: "berberine glucose", VectorScore: 0.6, Year: intPtr(2023)},
		{PaperId: "b", Title: "berberine", VectorScore: 0.9},
		{PaperId: "c", Title: "berberine glucose metabolism", VectorScore: 0.7, CitationCount: intPtr(80)},
	}

	first := r.Rerank("berberine glucose metabolism", results, 0.05)
	second := r.Rerank("berberine glucose metabolism", first, 0.05)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].PaperId, second[i].PaperId)
		assert.Equal(t, first[i].CombinedScore, second[i].CombinedScore)
	}
}

func TestRerankCustomWeights(t *testing.T) {
	r := NewReranker(
		WithLexicalWeight(0.5),
		WithRecencyBonuses(0.4, 0.2),
		WithCitationBonuses(0.4, 0.2),
	)
	res := &core.Result{Title: "berberine", VectorScore: 0.5, Year: intPtr(2023), CitationCount: intPtr(200)}

	reranked := r.Rerank("berberine", []*core.Result{res}, 0.0)
	require.Len(t, reranked, 1)

	// lexical = 1.1, bonus = 0.4 + 0.4
	assert.InDelta(t, 0.5+0.5*(1.1+0.8), reranked[0].CombinedScore, 0.0001)
}

func TestRerankEmptyInput(t *testing.T) {
	r := NewReranker()
	assert.Empty(t, r.Rerank("berberine", nil, 0.05))
}
