package search

import (
	"sort"

	"github.com/poiesic/evidex/core"
)

// Reranker combines vector similarity, lexical overlap, and metadata
// signals into a single ranking score.
type Reranker struct {
	lexicalWeight    float64
	recencyBonus2022 float64
	recencyBonus2018 float64
	citationBonus50  float64
	citationBonus10  float64
}

// RerankerOption configures a Reranker.
type RerankerOption func(*Reranker)

// WithLexicalWeight sets the weight applied to the lexical and metadata
// component of the combined score. Default is 0.2.
func WithLexicalWeight(w float64) RerankerOption {
	return func(r *Reranker) {
		r.lexicalWeight = w
	}
}

// WithRecencyBonuses sets the bonuses for papers published since 2022 and
// since 2018. The 2018 tier must stay below the 2022 tier so newer work
// outranks older work at equal similarity. Defaults are 0.2 and 0.1.
func WithRecencyBonuses(since2022, since2018 float64) RerankerOption {
	return func(r *Reranker) {
		r.recencyBonus2022 = since2022
		r.recencyBonus2018 = since2018
	}
}

// WithCitationBonuses sets the bonuses for papers with at least 50 and at
// least 10 citations. Defaults are 0.2 and 0.1.
func WithCitationBonuses(atLeast50, atLeast10 float64) RerankerOption {
	return func(r *Reranker) {
		r.citationBonus50 = atLeast50
		r.citationBonus10 = atLeast10
	}
}

// NewReranker creates a reranker with default weights.
func NewReranker(opts ...RerankerOption) *Reranker {
	r := &Reranker{
		lexicalWeight:    0.2,
		recencyBonus2022: 0.2,
		recencyBonus2018: 0.1,
		citationBonus50:  0.2,
		citationBonus10:  0.1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MetadataBonus scores recency and citation impact. Tiers do not stack:
// a paper gets at most one recency bonus and at most one citation bonus.
func (r *Reranker) MetadataBonus(res *core.Result) float64 {
	bonus := 0.0

	if res.Year != nil {
		if *res.Year >= 2022 {
			bonus += r.recencyBonus2022
		} else if *res.Year >= 2018 {
			bonus += r.recencyBonus2018
		}
	}

	if res.CitationCount != nil {
		if *res.CitationCount >= 50 {
			bonus += r.citationBonus50
		} else if *res.CitationCount >= 10 {
			bonus += r.citationBonus10
		}
	}

	return bonus
}

// Rerank scores each result against the query and returns the surviving
// results ordered by combined score descending.
//
// Results whose lexical score falls strictly below lexicalMin are dropped.
// Surviving results are mutated in place: LexicalScore and CombinedScore
// are set, where combined = vector + lexicalWeight * (lexical + bonus).
// The sort is stable, so equal scores keep their retrieval order.
func (r *Reranker) Rerank(query string, results []*core.Result, lexicalMin float64) []*core.Result {
	reranked := make([]*core.Result, 0, len(results))

	for _, res := range results {
		lexical := LexicalScore(query, res.Title, res.Abstract)
		if lexical < lexicalMin {
			continue
		}

		bonus := r.MetadataBonus(res)
		res.LexicalScore = lexical
		res.CombinedScore = res.VectorScore + r.lexicalWeight*(lexical+bonus)
		reranked = append(reranked, res)
	}

	sort.SliceStable(reranked, func(i, j int) bool {
		return reranked[i].CombinedScore > reranked[j].CombinedScore
	})

	return reranked
}
