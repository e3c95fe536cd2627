package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/evidex/ai"
	"github.com/poiesic/evidex/core"
	"github.com/poiesic/evidex/vectorstore"
)

const defaultBatchSize = 32

// Pipeline indexes papers into the vector store. Papers are validated,
// batched, encoded concurrently, and upserted under deterministic document
// keys so re-indexing the same corpus is idempotent.
type Pipeline struct {
	store     vectorstore.Store
	encoder   ai.Encoder
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent batch encoding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many papers are encoded and upserted per batch.
// Default is 32.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return ErrInvalidBatchSize
		}
		p.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(store vectorstore.Store, provider ai.AIProvider, opts ...Option) (*Pipeline, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		store:     store,
		encoder:   provider.Encoder(),
		pool:      pool,
		batchSize: defaultBatchSize,
		logger:    slog.Default().With("component", "ingestion"),
	}

	// Apply options
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// IndexPapers encodes and stores a corpus of papers. Invalid papers (no
// text to encode) are skipped with a warning, never aborting the run.
// Returns the number of papers indexed; batch failures are joined into
// one error after all batches finish.
func (p *Pipeline) IndexPapers(ctx context.Context, papers []*core.Paper) (int, error) {
	valid := make([]*core.Paper, 0, len(papers))
	for _, paper := range papers {
		if err := core.ValidatePaper(paper); err != nil {
			p.logger.Warn("skipping invalid paper", "err", err)
			continue
		}
		valid = append(valid, paper)
	}
	if len(valid) == 0 {
		return 0, nil
	}

	dimension, err := p.encoder.Dimension(ctx)
	if err != nil {
		return 0, err
	}
	if err := p.store.EnsureCollection(ctx, dimension); err != nil {
		return 0, err
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		indexed int
		errs    []error
	)

	for start := 0; start < len(valid); start += p.batchSize {
		end := start + p.batchSize
		if end > len(valid) {
			end = len(valid)
		}
		batch := valid[start:end]

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			n, err := p.indexBatch(ctx, batch)
			mu.Lock()
			defer mu.Unlock()
			indexed += n
			if err != nil {
				errs = append(errs, err)
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, submitErr)
			mu.Unlock()
		}
	}

	wg.Wait()

	p.logger.Info("indexing complete",
		"papers", len(papers),
		"indexed", indexed,
		"skipped", len(papers)-len(valid),
		"failedBatches", len(errs))

	return indexed, errors.Join(errs...)
}

// indexBatch encodes one batch and upserts it.
func (p *Pipeline) indexBatch(ctx context.Context, batch []*core.Paper) (int, error) {
	texts := make([]string, len(batch))
	for i, paper := range batch {
		texts[i] = paper.EncodingText()
	}

	vectors, err := p.encoder.EncodeArticles(ctx, texts)
	if err != nil {
		p.logger.Error("error encoding article batch", "batch", len(batch), "err", err)
		return 0, err
	}
	if len(vectors) != len(batch) {
		return 0, ErrEncodingMismatch
	}

	points := make([]vectorstore.Point, len(batch))
	for i, paper := range batch {
		points[i] = vectorstore.Point{
			ID:      paper.DocKey(),
			Vector:  vectors[i],
			Payload: paperPayload(paper),
		}
	}

	if err := p.store.Upsert(ctx, points); err != nil {
		p.logger.Error("error upserting batch", "batch", len(batch), "err", err)
		return 0, err
	}
	return len(batch), nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
