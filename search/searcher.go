package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/evidex/ai"
	"github.com/poiesic/evidex/core"
	"github.com/poiesic/evidex/vectorstore"
)

const defaultOversample = 3

// Searcher orchestrates the retrieval pipeline: encode the query, fetch an
// over-sampled candidate set from the vector store, decode payloads,
// rerank, truncate, and grade the evidence.
type Searcher struct {
	store      vectorstore.Store
	encoder    ai.Encoder
	reranker   *Reranker
	oversample int
	logger     *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithOversample sets the retrieval multiplier. The store is asked for
// oversample times the requested limit so the reranker has a candidate
// pool to promote from. Default is 3.
func WithOversample(n int) Option {
	return func(s *Searcher) error {
		if n < 1 {
			return fmt.Errorf("oversample must be at least 1, got %d", n)
		}
		s.oversample = n
		return nil
	}
}

// WithReranker replaces the default reranker.
func WithReranker(r *Reranker) Option {
	return func(s *Searcher) error {
		if r == nil {
			r = NewReranker()
		}
		s.reranker = r
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(store vectorstore.Store, provider ai.AIProvider, opts ...Option) (*Searcher, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		store:      store,
		encoder:    provider.Encoder(),
		reranker:   NewReranker(),
		oversample: defaultOversample,
		logger:     slog.Default().With("component", "searcher"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search executes the full retrieval pipeline for a request.
func (s *Searcher) Search(ctx context.Context, req *core.SearchRequest) (*core.SearchResponse, error) {
	return s.SearchWithMonitor(ctx, req, nil)
}

// SearchWithMonitor executes a search with monitoring. The monitor
// receives callbacks at each stage of the pipeline.
func (s *Searcher) SearchWithMonitor(ctx context.Context, req *core.SearchRequest, monitor SearchMonitor) (*core.SearchResponse, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if err := core.ValidateSearchRequest(req); err != nil {
		return nil, err
	}

	start := time.Now()
	monitor.Start(req.Query)

	// 1. Encode the query
	vector, err := s.encoder.EncodeQuery(ctx, req.Query)
	if err != nil {
		s.logger.Error("error encoding query", "query", req.Query, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrEncodingFailed, err)
	}
	monitor.AfterEncoding(len(vector))

	// 2. Over-fetch candidates so reranking has room to promote
	filter := buildFilter(req)
	points, err := s.store.Search(ctx, vector, filter, req.Limit*s.oversample)
	if err != nil {
		s.logger.Error("error querying vector store", "err", err)
		return nil, err
	}
	monitor.AfterVectorSearch(points)

	// 3. Decode payloads
	results := make([]*core.Result, 0, len(points))
	for _, p := range points {
		results = append(results, resultFromPoint(p))
	}
	monitor.AfterDecoding(results)

	// 4. Rerank with the lexical floor; a disabled lexical filter means
	// nothing is excluded but hybrid scores are still computed
	if req.UseReranking {
		floor := 0.0
		if req.UseLexicalFilter {
			floor = req.LexicalMin
		}
		results = s.reranker.Rerank(req.Query, results, floor)
		monitor.AfterReranking(results)
	}

	// 5. Truncate to the requested limit
	if len(results) > req.Limit {
		results = results[:req.Limit]
	}

	// 6. Grade the evidence the caller actually receives
	quality := AssessEvidenceQuality(results)

	response := &core.SearchResponse{
		Query:           req.Query,
		Results:         results,
		TotalFound:      len(results),
		EvidenceQuality: quality,
		SearchTimeMs:    float64(time.Since(start).Microseconds()) / 1000.0,
		Metadata: map[string]any{
			"candidates": len(points),
			"reranked":   req.UseReranking,
		},
	}
	monitor.Finish(response)

	s.logger.Debug("search complete",
		"query", req.Query,
		"candidates", len(points),
		"returned", len(results),
		"evidenceQuality", quality,
		"elapsedMs", response.SearchTimeMs)

	return response, nil
}

// buildFilter translates request constraints into store filter conditions.
// Year bounds and the citation floor are conjunctive ranges; publication
// types are disjunctive, so any requested type qualifies a paper.
func buildFilter(req *core.SearchRequest) *vectorstore.Filter {
	filter := &vectorstore.Filter{}

	if req.YearFrom != nil || req.YearTo != nil {
		rc := vectorstore.RangeCondition{Field: "year"}
		if req.YearFrom != nil {
			v := float64(*req.YearFrom)
			rc.GTE = &v
		}
		if req.YearTo != nil {
			v := float64(*req.YearTo)
			rc.LTE = &v
		}
		filter.Ranges = append(filter.Ranges, rc)
	}

	if req.MinCitations != nil {
		v := float64(*req.MinCitations)
		filter.Ranges = append(filter.Ranges, vectorstore.RangeCondition{
			Field: "citation_count",
			GTE:   &v,
		})
	}

	for _, pubType := range req.PublicationTypes {
		filter.Should = append(filter.Should, vectorstore.MatchCondition{
			Field: "publication_types",
			Value: pubType,
		})
	}

	if filter.IsEmpty() {
		return nil
	}
	return filter
}
