package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.LLMHost)
	assert.Equal(t, "medcpt-query", cfg.QueryModel)
	assert.Equal(t, "medcpt-article", cfg.ArticleModel)
	assert.Equal(t, "qwen2.5:3b", cfg.LLMModel)
	assert.Equal(t, 0.3, cfg.Temperature)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://localhost:11434/v1", cfg.LLMHost)
	})

	t.Run("with custom host", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://custom:8080/v1"))

		assert.Equal(t, "http://custom:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://custom:8080/v1", cfg.LLMHost)
	})

	t.Run("with separate hosts", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://embed:8080/v1"),
			WithLLMHost("http://llm:9090/v1"),
		)

		assert.Equal(t, "http://embed:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://llm:9090/v1", cfg.LLMHost)
	})

	t.Run("with custom models", func(t *testing.T) {
		cfg := NewConfig(
			WithQueryModel("ncbi/MedCPT-Query-Encoder"),
			WithArticleModel("ncbi/MedCPT-Article-Encoder"),
			WithLLMModel("gpt-4o-mini"),
		)

		assert.Equal(t, "ncbi/MedCPT-Query-Encoder", cfg.QueryModel)
		assert.Equal(t, "ncbi/MedCPT-Article-Encoder", cfg.ArticleModel)
		assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
	})

	t.Run("with symmetric encoder model", func(t *testing.T) {
		cfg := NewConfig(WithEncoderModel("text-embedding-3-small"))

		assert.Equal(t, "text-embedding-3-small", cfg.QueryModel)
		assert.Equal(t, "text-embedding-3-small", cfg.ArticleModel)
	})

	t.Run("with custom temperature", func(t *testing.T) {
		cfg := NewConfig(WithTemperature(0.0))

		assert.Equal(t, 0.0, cfg.Temperature)
	})
}

func TestConfigNormalize(t *testing.T) {
	t.Run("adds v1 suffix", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434"))
		cfg.Normalize()

		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://localhost:11434/v1", cfg.LLMHost)
	})

	t.Run("strips trailing slash before adding v1", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434/"))
		cfg.Normalize()

		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("leaves existing v1 suffix alone", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434/v1"))
		cfg.Normalize()

		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("default config is valid", func(t *testing.T) {
		cfg := DefaultConfig()
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing embedding host", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.EmbeddingHost = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing query model", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.QueryModel = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing article model", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ArticleModel = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing llm model", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.LLMModel = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("temperature out of range", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Temperature = 3.5
		assert.Error(t, cfg.Validate())
	})

	t.Run("validate normalizes hosts", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434"))
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})
}
