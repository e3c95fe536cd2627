// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mock

import "github.com/poiesic/evidex/ai"

// MockProvider is a test double for ai.AIProvider.
// It aggregates mock encoder and extractor instances.
type MockProvider struct {
	encoder   *MockEncoder
	extractor *MockIntentExtractor
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.AIProvider interface for consistency with production constructors.
// Use GetMockEncoder()/GetMockExtractor() to access concrete types for test assertions.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		encoder:   NewMockEncoder(),
		extractor: NewMockIntentExtractor(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(encoder *MockEncoder, extractor *MockIntentExtractor) ai.AIProvider {
	return &MockProvider{
		encoder:   encoder,
		extractor: extractor,
	}
}

// Encoder returns the mock encoder.
func (p *MockProvider) Encoder() ai.Encoder {
	return p.encoder
}

// IntentExtractor returns the mock intent extractor.
func (p *MockProvider) IntentExtractor() ai.IntentExtractor {
	return p.extractor
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEncoder returns the underlying mock encoder for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockEncoder() *MockEncoder {
	return p.encoder
}

// GetMockExtractor returns the underlying mock extractor for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockExtractor() *MockIntentExtractor {
	return p.extractor
}
