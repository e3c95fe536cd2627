package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/evidex/ai"
)

const intentResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "task_type": {
      "type": "string"
    },
    "entities": {
      "type": "array",
      "items": {
        "type": "string"
      }
    },
    "clinical_context": {
      "type": "string"
    }
  },
  "required": ["task_type", "entities", "clinical_context"],
  "additionalProperties": false
}`

const intentPromptTemplate = `Extract the search intent from this medical/health query and return it as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- task_type must match exactly one of: %s.
- clinical_context must match exactly one of: %s.
- entities lists the key medical/scientific terms useful for search: compounds, conditions, interventions.
- Be concise and specific. Do not hallucinate entities not present or implied in the query.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "User query: How does berberine improve insulin resistance?"
Output:
{
  "task_type": "mechanism_explanation",
  "entities": ["berberine", "insulin resistance"],
  "clinical_context": "metabolic_health"
}

Example:
Input: "User query: what should i take for blood pressure"
Output:
{
  "task_type": "protocol",
  "entities": ["blood pressure"],
  "clinical_context": "cardiovascular"
}

Example:
Input: "User query: summarize the evidence on NAD+ precursors and aging"
Output:
{
  "task_type": "research_review",
  "entities": ["nad+ precursors", "aging"],
  "clinical_context": "longevity"
}`

// buildIntentPrompt creates the system prompt with the valid vocabularies embedded.
func buildIntentPrompt() string {
	return fmt.Sprintf(intentPromptTemplate,
		intentResponseSchema,
		strings.Join(ai.TaskTypes, ", "),
		strings.Join(ai.ClinicalContexts, ", "))
}
