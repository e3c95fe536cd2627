package intent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/evidex/ai"
	"github.com/poiesic/evidex/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	t.Run("requires provider", func(t *testing.T) {
		_, err := NewService(nil)
		assert.ErrorIs(t, err, ErrAIProviderRequired)
	})

	t.Run("creates service", func(t *testing.T) {
		svc, err := NewService(mock.NewMockProvider())
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestExtractUsesExtractor(t *testing.T) {
	extractor := mock.NewMockIntentExtractor()
	extractor.ExtractIntentFunc = func(_ context.Context, _ string) (*ai.Intent, error) {
		return &ai.Intent{
			TaskType:        "mechanism_explanation",
			Entities:        []string{"berberine", "ampk"},
			ClinicalContext: "metabolic_health",
		}, nil
	}
	svc, err := NewService(mock.NewMockProviderWithServices(mock.NewMockEncoder(), extractor))
	require.NoError(t, err)

	intent := svc.Extract(context.Background(), "How does berberine activate AMPK?")

	assert.Equal(t, "mechanism_explanation", intent.TaskType)
	assert.Equal(t, []string{"berberine", "ampk"}, intent.Entities)
}

func TestExtractFallsBackOnError(t *testing.T) {
	extractor := mock.NewMockIntentExtractor()
	extractor.ExtractIntentFunc = func(_ context.Context, _ string) (*ai.Intent, error) {
		return nil, errors.New("llm unavailable")
	}
	svc, err := NewService(mock.NewMockProviderWithServices(mock.NewMockEncoder(), extractor))
	require.NoError(t, err)

	intent := svc.Extract(context.Background(), "What is the mechanism of berberine in glucose control?")

	require.NotNil(t, intent)
	assert.Equal(t, "mechanism_explanation", intent.TaskType)
	assert.Equal(t, "metabolic_health", intent.ClinicalContext)
}

func TestExtractFallsBackOnEmptyIntent(t *testing.T) {
	extractor := mock.NewMockIntentExtractor()
	extractor.ExtractIntentFunc = func(_ context.Context, _ string) (*ai.Intent, error) {
		return &ai.Intent{}, nil
	}
	svc, err := NewService(mock.NewMockProviderWithServices(mock.NewMockEncoder(), extractor))
	require.NoError(t, err)

	intent := svc.Extract(context.Background(), "berberine")

	require.NotNil(t, intent)
	assert.Equal(t, "general_question", intent.TaskType)
}

func TestExtractTruncatesLongMessages(t *testing.T) {
	var received string
	extractor := mock.NewMockIntentExtractor()
	extractor.ExtractIntentFunc = func(_ context.Context, message string) (*ai.Intent, error) {
		received = message
		return &ai.Intent{TaskType: "general_question"}, nil
	}
	svc, err := NewService(mock.NewMockProviderWithServices(mock.NewMockEncoder(), extractor))
	require.NoError(t, err)

	svc.Extract(context.Background(), strings.Repeat("a", 1200))

	assert.Len(t, received, 500)
}

func TestFallbackIntentTaskTypes(t *testing.T) {
	tests := []struct {
		message  string
		expected string
	}{
		{"Explain the mechanism of metformin", "mechanism_explanation"},
		{"What treatment protocol is recommended?", "protocol"},
		{"Give me a summary of the findings", "clinical_summary"},
		{"What does the research evidence say?", "research_review"},
		{"Is berberine safe?", "general_question"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			intent := FallbackIntent(tc.message)
			assert.Equal(t, tc.expected, intent.TaskType)
		})
	}
}

func TestFallbackIntentClinicalContexts(t *testing.T) {
	tests := []struct {
		message  string
		expected string
	}{
		{"berberine for insulin sensitivity", "metabolic_health"},
		{"effects on blood pressure", "cardiovascular"},
		{"cognitive decline prevention", "neurological"},
		{"compounds that extend lifespan", "longevity"},
		{"vitamin c dosage", "general"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			intent := FallbackIntent(tc.message)
			assert.Equal(t, tc.expected, intent.ClinicalContext)
		})
	}
}

func TestFallbackIntentEntities(t *testing.T) {
	t.Run("caps at five distinct words", func(t *testing.T) {
		intent := FallbackIntent("berberine magnesium zinc selenium taurine creatine glycine")
		assert.Len(t, intent.Entities, 5)
	})

	t.Run("skips short words and duplicates", func(t *testing.T) {
		intent := FallbackIntent("is the berberine berberine ok")
		assert.Equal(t, []string{"berberine"}, intent.Entities)
	})

	t.Run("strips markup", func(t *testing.T) {
		intent := FallbackIntent("<b>berberine</b> dosage")
		assert.Contains(t, intent.Entities, "berberine")
		assert.NotContains(t, intent.Entities, "b")
	})
}
