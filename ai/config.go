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


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// LLMHost is the base URL for the intent extraction service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	LLMHost string

	// QueryModel is the model identifier used for encoding search queries.
	// Example: "medcpt-query", "text-embedding-3-small"
	QueryModel string

	// ArticleModel is the model identifier used for encoding article texts.
	// Retrieval models for biomedical text are asymmetric; queries and
	// articles typically use sibling models trained together.
	// Example: "medcpt-article", "text-embedding-3-small"
	ArticleModel string

	// LLMModel is the model identifier used for intent extraction.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	LLMModel string

	// Temperature is the sampling temperature for intent extraction.
	// Default: 0.3
	Temperature float64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithLLMHost sets the intent extraction service host URL.
func WithLLMHost(host string) ConfigOption {
	return func(c *Config) {
		c.LLMHost = host
	}
}

// WithHost sets both embedding and LLM hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.LLMHost = host
	}
}

// WithQueryModel sets the query encoder model identifier.
func WithQueryModel(model string) ConfigOption {
	return func(c *Config) {
		c.QueryModel = model
	}
}

// WithArticleModel sets the article encoder model identifier.
func WithArticleModel(model string) ConfigOption {
	return func(c *Config) {
		c.ArticleModel = model
	}
}

// WithEncoderModel sets both query and article models to the same identifier,
// for symmetric embedding models.
func WithEncoderModel(model string) ConfigOption {
	return func(c *Config) {
		c.QueryModel = model
		c.ArticleModel = model
	}
}

// WithLLMModel sets the intent extraction model identifier.
func WithLLMModel(model string) ConfigOption {
	return func(c *Config) {
		c.LLMModel = model
	}
}

// WithTemperature sets the sampling temperature for intent extraction.
func WithTemperature(temperature float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = temperature
	}
}

// DefaultConfig returns a Config with sensible defaults for local OpenAI-compatible services.
// By default, embedding and LLM use the same host.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost: defaultHost,
		LLMHost:       defaultHost,
		QueryModel:    "medcpt-query",
		ArticleModel:  "medcpt-article",
		LLMModel:      "qwen2.5:3b",
		Temperature:   0.3,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//   cfg := NewConfig(
//       WithHost("http://localhost:11434/v1"),
//       WithEncoderModel("text-embedding-3-small"),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
	if c.LLMHost != "" && !strings.HasSuffix(c.LLMHost, "/v1") {
		c.LLMHost = strings.TrimSuffix(c.LLMHost, "/")
		c.LLMHost = c.LLMHost + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.LLMHost == "" {
		return errors.New("ai config: LLMHost is required")
	}
	if c.QueryModel == "" {
		return errors.New("ai config: QueryModel is required")
	}
	if c.ArticleModel == "" {
		return errors.New("ai config: ArticleModel is required")
	}
	if c.LLMModel == "" {
		return errors.New("ai config: LLMModel is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	return nil
}
