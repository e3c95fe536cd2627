package mock

import (
	"context"
	"strings"

	"github.com/poiesic/evidex/ai"
)

// MockIntentExtractor is a test double for ai.IntentExtractor.
// It allows custom behavior injection via function fields.
type MockIntentExtractor struct {
	// ExtractIntentFunc is called by ExtractIntent if set.
	// If nil, uses default simple word extraction.
	ExtractIntentFunc func(ctx context.Context, message string) (*ai.Intent, error)

	callCount int
}

// NewMockIntentExtractor creates a mock intent extractor with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExtractor().
func NewMockIntentExtractor() *MockIntentExtractor {
	return &MockIntentExtractor{}
}

// ExtractIntent builds a simple mock intent from the message.
// Default behavior: classifies everything as a general question and uses
// the first few cleaned words as entities.
func (m *MockIntentExtractor) ExtractIntent(ctx context.Context, message string) (*ai.Intent, error) {
	m.callCount++

	if m.ExtractIntentFunc != nil {
		return m.ExtractIntentFunc(ctx, message)
	}

	words := strings.Fields(strings.ToLower(message))
	entities := make([]string, 0, len(words))
	for _, word := range words {
		if len(entities) >= 5 {
			break
		}

		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if len(word) < 4 {
			continue
		}

		entities = append(entities, word)
	}

	return &ai.Intent{
		TaskType:        "general_question",
		Entities:        entities,
		ClinicalContext: "general",
	}, nil
}

// CallCount returns the number of times ExtractIntent was called.
func (m *MockIntentExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockIntentExtractor) Reset() {
	m.callCount = 0
	m.ExtractIntentFunc = nil
}
