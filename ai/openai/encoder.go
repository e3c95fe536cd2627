package openai

import (
	"context"
	"log/slog"
	"sync"

	"github.com/poiesic/evidex/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Encoder implements ai.Encoder using OpenAI-compatible embedding APIs.
// Queries and articles are encoded with separate models, following the
// asymmetric dual-encoder design used by biomedical retrieval models.
type Encoder struct {
	queryEmbedder   embeddings.Embedder
	articleEmbedder embeddings.Embedder
	logger          *slog.Logger

	mu  sync.Mutex
	dim int // discovered lazily from the deployed model
}

// newEmbedder builds a langchaingo embedder for one model.
// Use "none" as token for local OpenAI-compatible services that don't require authentication.
func newEmbedder(host, model string) (embeddings.Embedder, error) {
	client, err := openai.New(
		openai.WithBaseURL(host),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(model),
	)
	if err != nil {
		return nil, err
	}

	return embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
}

// newEncoder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEncoder(config *ai.Config) (*Encoder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	queryEmbedder, err := newEmbedder(config.EmbeddingHost, config.QueryModel)
	if err != nil {
		return nil, err
	}

	articleEmbedder, err := newEmbedder(config.EmbeddingHost, config.ArticleModel)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		queryEmbedder:   queryEmbedder,
		articleEmbedder: articleEmbedder,
		logger:          slog.Default().With("component", "openai-encoder"),
	}, nil
}

// NewEncoder creates a new encoder using the provided configuration.
//
// Returns ai.Encoder interface to enforce abstraction.
func NewEncoder(config *ai.Config) (ai.Encoder, error) {
	return newEncoder(config)
}

// EncodeQuery generates a vector embedding for a single search query.
func (e *Encoder) EncodeQuery(ctx context.Context, query string) ([]float32, error) {
	e.logger.Debug("encoding query", "length", len(query))

	vector, err := e.queryEmbedder.EmbedQuery(ctx, query)
	if err != nil {
		e.logger.Error("failed to encode query", "err", err)
		return nil, err
	}

	e.recordDimension(len(vector))
	return vector, nil
}

// EncodeArticles generates vector embeddings for multiple article texts in a batch.
func (e *Encoder) EncodeArticles(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("encoding articles", "count", len(texts))

	vectors, err := e.articleEmbedder.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("failed to encode articles", "count", len(texts), "err", err)
		return nil, err
	}

	if len(vectors) > 0 {
		e.recordDimension(len(vectors[0]))
	}
	return vectors, nil
}

// Dimension reports the embedding dimension of the deployed model.
// On first call it probes the model with a short query; subsequent calls
// return the cached value.
func (e *Encoder) Dimension(ctx context.Context) (int, error) {
	e.mu.Lock()
	dim := e.dim
	e.mu.Unlock()
	if dim > 0 {
		return dim, nil
	}

	vector, err := e.queryEmbedder.EmbedQuery(ctx, "dimension probe")
	if err != nil {
		e.logger.Error("failed to probe embedding dimension", "err", err)
		return 0, err
	}

	e.recordDimension(len(vector))
	return len(vector), nil
}

func (e *Encoder) recordDimension(dim int) {
	if dim <= 0 {
		return
	}
	e.mu.Lock()
	if e.dim == 0 {
		e.dim = dim
	}
	e.mu.Unlock()
}
