package search

import "strings"

// stopwords excluded from lexical scoring. Covers English function words
// plus generic research vocabulary that appears in nearly every biomedical
// abstract and carries no discriminative signal.
var stopwords = map[string]struct{}{
	// Common English function words
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "been": {}, "by": {}, "for": {}, "from": {}, "has": {},
	"have": {}, "in": {}, "is": {}, "it": {}, "its": {}, "of": {},
	"on": {}, "or": {}, "that": {}, "the": {}, "to": {}, "was": {},
	"were": {}, "will": {}, "with": {}, "without": {},
	// Generic research terms
	"study": {}, "studies": {}, "trial": {}, "trials": {},
	"randomized": {}, "randomised": {}, "controlled": {}, "double": {},
	"blind": {}, "placebo": {}, "effect": {}, "effects": {},
	"treatment": {}, "therapy": {}, "patient": {}, "patients": {},
	"women": {}, "men": {}, "woman": {}, "man": {}, "human": {},
	"humans": {}, "subjects": {}, "subject": {}, "participants": {},
	"participant": {}, "group": {}, "groups": {}, "outcome": {},
	"outcomes": {}, "risk": {}, "risks": {}, "association": {},
	"associated": {}, "impact": {}, "clinical": {}, "cohort": {},
	"review": {}, "analysis": {}, "analyzed": {}, "evaluated": {},
	"compared": {}, "result": {}, "results": {}, "data": {},
	"method": {}, "methods": {}, "research": {}, "sample": {},
	"population": {}, "design": {}, "findings": {}, "conclusion": {},
	"background": {}, "objective": {}, "intervention": {},
	"interventions": {}, "measure": {}, "measured": {}, "assessment": {},
}

const punctuation = ",.;:()[]{}\"'!?/-"

// tokenize lowercases text, strips punctuation, and splits on whitespace.
func tokenize(text string) []string {
	text = strings.ToLower(text)
	text = strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return ' '
		}
		return r
	}, text)
	return strings.Fields(text)
}

// contentSet returns the set of non-stopword tokens.
func contentSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if _, stop := stopwords[t]; stop {
			continue
		}
		set[t] = struct{}{}
	}
	return set
}

// LexicalScore measures term overlap between a query and a document.
//
// The score is coverage (fraction of distinct query content terms found in
// the document) plus 0.1 per overlapping term, so multi-term matches score
// above 1.0. Returns exactly 0.0 when either side has no content terms
// left after stopword removal.
func LexicalScore(query, title, abstract string) float64 {
	queryContent := contentSet(tokenize(query))

	docText := title
	if abstract != "" {
		docText += " " + abstract
	}
	docContent := contentSet(tokenize(docText))

	if len(queryContent) == 0 || len(docContent) == 0 {
		return 0.0
	}

	overlap := 0
	for term := range queryContent {
		if _, ok := docContent[term]; ok {
			overlap++
		}
	}

	coverage := float64(overlap) / float64(len(queryContent))
	return coverage + 0.1*float64(overlap)
}
