package ai

// TaskTypes defines the valid task classifications for extracted intent.
// These describe what kind of answer the user needs.
var TaskTypes = []string{
	"clinical_summary",
	"mechanism_explanation",
	"protocol",
	"differential_dx",
	"research_review",
	"general_question",
}

// ClinicalContexts defines the valid health domains for extracted intent.
var ClinicalContexts = []string{
	"metabolic_health",
	"cardiovascular",
	"neurological",
	"immune",
	"longevity",
	"general",
}
