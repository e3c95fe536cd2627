package intent

import (
	"regexp"
	"strings"

	"github.com/poiesic/evidex/ai"
)

var (
	tagPattern  = regexp.MustCompile(`<[^>]+>`)
	wordPattern = regexp.MustCompile(`\b[a-z]{4,}\b`)
)

// FallbackIntent derives an intent from keyword heuristics alone, for when
// the LLM extractor is unavailable or returns garbage.
func FallbackIntent(message string) *ai.Intent {
	clean := strings.ToLower(tagPattern.ReplaceAllString(message, " "))

	taskType := "general_question"
	switch {
	case containsAny(clean, "explain", "mechanism", "how does", "pathway"):
		taskType = "mechanism_explanation"
	case containsAny(clean, "protocol", "treatment", "intervention"):
		taskType = "protocol"
	case containsAny(clean, "summarize", "summary", "overview"):
		taskType = "clinical_summary"
	case containsAny(clean, "research", "studies", "evidence"):
		taskType = "research_review"
	}

	clinicalContext := "general"
	switch {
	case containsAny(clean, "metabolic", "insulin", "glucose", "diabetes"):
		clinicalContext = "metabolic_health"
	case containsAny(clean, "heart", "cardiovascular", "blood pressure"):
		clinicalContext = "cardiovascular"
	case containsAny(clean, "brain", "cognitive", "neuro"):
		clinicalContext = "neurological"
	case containsAny(clean, "aging", "longevity", "lifespan"):
		clinicalContext = "longevity"
	}

	return &ai.Intent{
		TaskType:        taskType,
		Entities:        extractEntities(clean),
		ClinicalContext: clinicalContext,
	}
}

// extractEntities picks up to five distinct words of four or more letters,
// in order of first appearance.
func extractEntities(clean string) []string {
	words := wordPattern.FindAllString(clean, -1)
	seen := make(map[string]struct{}, len(words))
	entities := make([]string, 0, 5)
	for _, w := range words {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		entities = append(entities, w)
		if len(entities) == 5 {
			break
		}
	}
	return entities
}

func containsAny(s string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
