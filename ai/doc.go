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


// Package ai provides abstractions for AI services used in Evidex.
//
// This package defines interfaces for AI operations including biomedical
// text encoding and search intent extraction. It follows the dependency
// inversion principle, allowing the core retrieval pipeline to depend on
// abstractions rather than concrete implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Encoder: Generates vector embeddings for queries and articles
//   - IntentExtractor: Extracts structured search intent from user messages
//   - AIProvider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEncoder, etc.) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations. Test utility constructors (mock.NewMockEncoder,
// mock.NewMockIntentExtractor) return CONCRETE types to enable test
// assertions and behavior injection via function fields.
//
// # Usage Example
//
//	// Production usage with OpenAI-compatible provider
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Encoder().EncodeQuery(ctx, "berberine insulin resistance")
//	intent, err := provider.IntentExtractor().ExtractIntent(ctx, "What is berberine?")
//
//	// Testing usage with mocks
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Encoder().EncodeQuery(ctx, "test query")
//
// # Architecture Benefits
//
//   - Testability: The retrieval pipeline can be tested without external AI services
//   - Flexibility: AI providers can be swapped without changing pipeline logic
//   - Maintainability: Clear boundaries between AI services and retrieval logic
//   - Extensibility: New providers can be added by implementing interfaces
package ai
