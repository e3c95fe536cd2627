package ai

import "context"

// Encoder generates vector embeddings for biomedical text.
// Retrieval is asymmetric: queries and articles are encoded with separate
// models (the MedCPT pattern), so the interface exposes both sides.
// Implementations must be thread-safe for concurrent use.
type Encoder interface {
	// EncodeQuery generates a vector embedding for a single search query.
	// The input is passed to the model as-is; any truncation policy belongs
	// to the encoder, not the caller.
	// Returns an error if the embedding generation fails.
	EncodeQuery(ctx context.Context, query string) ([]float32, error)

	// EncodeArticles generates vector embeddings for multiple article texts
	// in a batch. The returned slice contains embeddings in the same order
	// as the input texts.
	// Returns an error if any embedding generation fails.
	EncodeArticles(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension reports the embedding dimension of the deployed model.
	// The dimension is a property of the model and is discovered at first
	// use, not hardcoded.
	Dimension(ctx context.Context) (int, error)
}

// IntentExtractor extracts structured search intent from a user message.
// Implementations must be thread-safe for concurrent use.
type IntentExtractor interface {
	// ExtractIntent analyzes a message and returns the task type, key
	// entities, and clinical context that should guide retrieval.
	// Returns an error if the extraction fails or produces no usable
	// structure; callers decide whether to fall back to heuristics.
	ExtractIntent(ctx context.Context, message string) (*Intent, error)
}

// Intent is the structured search intent extracted from a user message.
type Intent struct {
	// TaskType identifies the kind of answer the user needs.
	// Must match one of the predefined task types.
	TaskType string `json:"task_type"`

	// Entities lists the key medical or scientific terms in the message,
	// useful for search (compounds, conditions, interventions).
	Entities []string `json:"entities"`

	// ClinicalContext is the health domain of the message.
	// Must match one of the predefined clinical contexts.
	ClinicalContext string `json:"clinical_context"`
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Encoder and IntentExtractor instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Encoder returns the text encoding service.
	// The returned Encoder is safe for concurrent use.
	Encoder() Encoder

	// IntentExtractor returns the intent extraction service.
	// The returned IntentExtractor is safe for concurrent use.
	IntentExtractor() IntentExtractor

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
