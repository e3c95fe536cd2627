package mock

import (
	"context"
	"hash/fnv"
)

// MockEncoder is a test double for ai.Encoder.
// It allows custom behavior injection via function fields.
type MockEncoder struct {
	// EncodeQueryFunc is called by EncodeQuery if set.
	// If nil, uses default deterministic behavior.
	EncodeQueryFunc func(ctx context.Context, query string) ([]float32, error)

	// EncodeArticlesFunc is called by EncodeArticles if set.
	// If nil, uses default deterministic behavior.
	EncodeArticlesFunc func(ctx context.Context, texts []string) ([][]float32, error)

	// Dim is the embedding dimension reported and generated by default
	// behavior. If zero, 768 is used (the MedCPT dimension).
	Dim int

	callCount int
}

// NewMockEncoder creates a mock encoder with default deterministic behavior.
// Note: Returns concrete type to allow test assertions via GetMockEncoder().
func NewMockEncoder() *MockEncoder {
	return &MockEncoder{}
}

func (m *MockEncoder) dim() int {
	if m.Dim > 0 {
		return m.Dim
	}
	return 768
}

// EncodeQuery generates a deterministic embedding based on the query hash.
func (m *MockEncoder) EncodeQuery(ctx context.Context, query string) ([]float32, error) {
	m.callCount++

	if m.EncodeQueryFunc != nil {
		return m.EncodeQueryFunc(ctx, query)
	}

	// Default: generate deterministic vector from text hash
	return generateDeterministicVector(query, m.dim()), nil
}

// EncodeArticles generates deterministic embeddings for multiple texts.
func (m *MockEncoder) EncodeArticles(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount++

	if m.EncodeArticlesFunc != nil {
		return m.EncodeArticlesFunc(ctx, texts)
	}

	// Default: generate deterministic vectors for each text
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = generateDeterministicVector(text, m.dim())
	}
	return vectors, nil
}

// Dimension reports the mock embedding dimension.
func (m *MockEncoder) Dimension(ctx context.Context) (int, error) {
	return m.dim(), nil
}

// CallCount returns the number of times any encoding method was called.
func (m *MockEncoder) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockEncoder) Reset() {
	m.callCount = 0
	m.EncodeQueryFunc = nil
	m.EncodeArticlesFunc = nil
}

// generateDeterministicVector creates a deterministic embedding vector from text.
// It uses FNV hash to ensure the same text always produces the same vector.
func generateDeterministicVector(text string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vector := make([]float32, dim)
	for i := 0; i < dim; i++ {
		// Simple pseudo-random generation based on seed and index
		seed = seed*1664525 + 1013904223 // LCG constants
		vector[i] = float32(seed%1000) / 1000.0
	}

	// Normalize to unit vector
	var sumSquares float32
	for _, v := range vector {
		sumSquares += v * v
	}
	norm := float32(1.0)
	if sumSquares > 0 {
		norm = float32(1.0) / float32(sumSquares)
		for i := range vector {
			vector[i] *= norm
		}
	}

	return vector
}
