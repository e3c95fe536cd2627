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


package openai

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/evidex/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// IntentExtractor implements ai.IntentExtractor using OpenAI-compatible chat APIs.
type IntentExtractor struct {
	client      llms.Model
	temperature float64
	logger      *slog.Logger
}

// intentResponse is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type intentResponse struct {
	TaskType        string   `json:"task_type"`
	Entities        []string `json:"entities"`
	ClinicalContext string   `json:"clinical_context"`
}

var errEmptyIntent = errors.New("intent response missing task_type")

// newIntentExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newIntentExtractor(config *ai.Config) (*IntentExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.LLMHost),
		openai.WithToken("none"),
		openai.WithModel(config.LLMModel),
	)
	if err != nil {
		return nil, err
	}

	return &IntentExtractor{
		client:      client,
		temperature: config.Temperature,
		logger:      slog.Default().With("component", "openai-intent"),
	}, nil
}

// NewIntentExtractor creates a new intent extractor using the provided configuration.
//
// Returns ai.IntentExtractor interface to enforce abstraction.
func NewIntentExtractor(config *ai.Config) (ai.IntentExtractor, error) {
	return newIntentExtractor(config)
}

// ExtractIntent extracts structured search intent from a user message using an LLM.
func (e *IntentExtractor) ExtractIntent(ctx context.Context, message string) (*ai.Intent, error) {
	systemPrompt := buildIntentPrompt()
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart("User query: " + message),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result intentResponse
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(e.temperature), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return nil, errEmptyIntent
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing intent response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse intent response after retries", "err", lastErr)
		return nil, lastErr
	}

	if result.TaskType == "" {
		return nil, errEmptyIntent
	}

	intent := &ai.Intent{
		TaskType:        normalizeLabel(result.TaskType),
		Entities:        result.Entities,
		ClinicalContext: normalizeLabel(result.ClinicalContext),
	}

	// Clamp out-of-vocabulary labels to the general buckets rather than
	// rejecting the whole extraction.
	if !slices.Contains(ai.TaskTypes, intent.TaskType) {
		e.logger.Debug("unknown task type from model", "task_type", intent.TaskType)
		intent.TaskType = "general_question"
	}
	if !slices.Contains(ai.ClinicalContexts, intent.ClinicalContext) {
		intent.ClinicalContext = "general"
	}

	e.logger.Debug("extracted intent",
		"task_type", intent.TaskType,
		"entities", len(intent.Entities),
		"clinical_context", intent.ClinicalContext)

	return intent, nil
}

// normalizeLabel lowercases a label and replaces spaces with underscores so
// model output like "Clinical Summary" matches the predefined vocabulary.
func normalizeLabel(label string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "_")
}
