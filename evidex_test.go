package evidex

import (
	"context"
	"testing"

	"github.com/poiesic/evidex/ai/mock"
	"github.com/poiesic/evidex/core"
	"github.com/poiesic/evidex/vectorstore/local"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := local.Open("", true)
	require.NoError(t, err)

	svc, err := NewService("", WithStore(store), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() {
		svc.Close()
	})
	return svc
}

func TestNewServiceOpensEmbeddedStore(t *testing.T) {
	svc, err := NewService(t.TempDir(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer svc.Close()

	count, err := svc.Store().Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestServiceIndexThenSearch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	pipeline, err := svc.NewIngestionPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	year := 2023
	citations := 120
	indexed, err := pipeline.IndexPapers(ctx, []*core.Paper{
		{
			PaperId:          "1",
			Title:            "Berberine improves insulin resistance in type 2 diabetes",
			Abstract:         "A meta-analysis of berberine for insulin resistance.",
			Year:             &year,
			CitationCount:    &citations,
			PublicationTypes: []string{"Meta-Analysis"},
		},
		{
			PaperId:  "2",
			Title:    "Coral reef acidification",
			Abstract: "Marine chemistry under rising CO2.",
		},
	})
	require.NoError(t, err)
	require.Equal(t, 2, indexed)

	searcher, err := svc.NewSearcher()
	require.NoError(t, err)

	resp, err := searcher.Search(ctx, core.NewSearchRequest("berberine insulin resistance"))
	require.NoError(t, err)

	require.Len(t, resp.Results, 1, "off-topic paper is lexically filtered")
	assert.Equal(t, "1", resp.Results[0].PaperId)
	assert.GreaterOrEqual(t, resp.EvidenceQuality, 2)
}

func TestServiceComponents(t *testing.T) {
	svc := newTestService(t)

	intents, err := svc.NewIntentService()
	require.NoError(t, err)

	intent := intents.Extract(context.Background(), "How does berberine affect glucose?")
	require.NotNil(t, intent)
	assert.NotEmpty(t, intent.TaskType)
}
