package intent

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/poiesic/evidex/ai"
)

// maxMessageRunes bounds the text sent to the LLM extractor.
const maxMessageRunes = 500

// Service extracts structured search intent from user messages. Extraction
// never fails a request: when the LLM extractor errors or returns an
// unusable result, a heuristic keyword-based intent is substituted.
type Service struct {
	extractor ai.IntentExtractor
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewService creates an intent service backed by the provider's extractor.
func NewService(provider ai.AIProvider, opts ...Option) (*Service, error) {
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Service{
		extractor: provider.IntentExtractor(),
		logger:    slog.Default().With("component", "intent"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Extract returns the search intent for a user message. Long messages are
// truncated before hitting the LLM; the fallback heuristic sees the full
// message. Always returns a usable intent.
func (s *Service) Extract(ctx context.Context, message string) *ai.Intent {
	extracted, err := s.extractor.ExtractIntent(ctx, truncateRunes(message, maxMessageRunes))
	if err != nil {
		s.logger.Warn("intent extraction failed, using heuristic fallback", "err", err)
		return FallbackIntent(message)
	}
	if extracted == nil || extracted.TaskType == "" {
		s.logger.Debug("extractor returned empty intent, using heuristic fallback")
		return FallbackIntent(message)
	}
	return extracted
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
