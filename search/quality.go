package search

import (
	"math"
	"strings"

	"github.com/poiesic/evidex/core"
)

// referenceYear anchors the recency window for quality assessment.
// TODO: derive from the indexing run once index metadata carries a build date.
const referenceYear = 2025

// AssessEvidenceQuality grades a result set on a 0-5 scale.
//
//	5 - Exceptional: multiple systematic reviews/meta-analyses, high citations
//	4 - Strong: mix of reviews and high-quality RCTs, good citations
//	3 - Moderate: several primary studies with decent citations
//	2 - Limited: few studies or lower quality evidence
//	1 - Weak: very limited evidence, low citations
//	0 - Insufficient: no relevant results
//
// Each result counts toward at most one evidence class, matched
// case-insensitively against its publication type in hierarchy order.
// The component sum is rounded half up and capped at 5.
func AssessEvidenceQuality(results []*core.Result) int {
	if len(results) == 0 {
		return 0
	}

	var (
		metaAnalyses      int
		systematicReviews int
		rcts              int
		otherReviews      int
		highCitation      int // >= 100 citations
		moderateCitation  int // 50-99 citations
		recent            int // within the last 3 years
	)

	for _, res := range results {
		pubType := strings.ToLower(res.PublicationType)
		citations := 0
		if res.CitationCount != nil {
			citations = *res.CitationCount
		}
		year := 0
		if res.Year != nil {
			year = *res.Year
		}

		switch {
		case strings.Contains(pubType, "meta-analysis") || strings.Contains(pubType, "meta analysis"):
			metaAnalyses++
		case strings.Contains(pubType, "systematic review"):
			systematicReviews++
		case strings.Contains(pubType, "randomized controlled trial") || strings.Contains(pubType, "rct"):
			rcts++
		case strings.Contains(pubType, "review"):
			otherReviews++
		}

		if citations >= 100 {
			highCitation++
		} else if citations >= 50 {
			moderateCitation++
		}

		if year >= referenceYear-3 {
			recent++
		}
	}

	score := 0.0

	// Base score from number of results
	if len(results) >= 5 {
		score += 1.0
	} else if len(results) >= 3 {
		score += 0.5
	}

	// Evidence hierarchy, the dominant component
	switch {
	case metaAnalyses >= 2:
		score += 2.5
	case metaAnalyses >= 1:
		score += 2.0
	case systematicReviews >= 2:
		score += 2.0
	case systematicReviews >= 1:
		score += 1.5
	case rcts >= 3:
		score += 1.5
	case rcts >= 1:
		score += 1.0
	case otherReviews >= 2:
		score += 1.0
	case otherReviews >= 1:
		score += 0.5
	}

	// Citation impact
	switch {
	case highCitation >= 2:
		score += 1.0
	case highCitation >= 1:
		score += 0.5
	case moderateCitation >= 2:
		score += 0.5
	}

	// Recency
	if recent >= 2 {
		score += 0.5
	}

	// Round half up, cap at 5
	grade := int(math.Floor(score + 0.5))
	if grade > 5 {
		grade = 5
	}
	return grade
}
