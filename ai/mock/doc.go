// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Encoder, ai.IntentExtractor,
// and ai.AIProvider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Encoder().EncodeQuery(ctx, "test")
//
//	// Custom behavior injection
//	mockEncoder := mock.NewMockEncoder()
//	mockEncoder.EncodeQueryFunc = func(ctx context.Context, query string) ([]float32, error) {
//	    return []float32{0.1, 0.2, 0.3}, nil
//	}
//
//	// Check call counts
//	count := mockEncoder.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEncoder: Returns deterministic vectors based on text hash
//   - MockIntentExtractor: Builds a general-question intent from message words
//   - MockProvider: Aggregates mock encoder and extractor
package mock
