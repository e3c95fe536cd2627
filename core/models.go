package core

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// SourceTag is the provenance tag stamped on every result returned by the
// retrieval pipeline.
const SourceTag = "qdrant"

// SearchRequest carries a user query plus filter parameters for one retrieval
// call. A request is constructed once and treated as immutable.
type SearchRequest struct {
	Query            string   `json:"query"`
	Limit            int      `json:"limit"`
	YearFrom         *int     `json:"year_from,omitempty"`
	YearTo           *int     `json:"year_to,omitempty"`
	MinCitations     *int     `json:"min_citations,omitempty"`
	LexicalMin       float64  `json:"lexical_min"`
	PublicationTypes []string `json:"publication_types,omitempty"`
	UseReranking     bool     `json:"use_reranking"`
	UseLexicalFilter bool     `json:"use_lexical_filter"`
}

// NewSearchRequest creates a request with the service defaults:
// 5 results, 0.05 lexical floor, reranking and lexical filtering enabled.
func NewSearchRequest(query string) *SearchRequest {
	return &SearchRequest{
		Query:            query,
		Limit:            5,
		LexicalMin:       0.05,
		UseReranking:     true,
		UseLexicalFilter: true,
	}
}

// Result is the normalized view of a single retrieved paper, augmented with
// scoring fields during reranking.
type Result struct {
	PaperId         string   `json:"paper_id"`
	Title           string   `json:"title"`
	Abstract        string   `json:"abstract,omitempty"`
	Authors         []string `json:"authors"`
	Year            *int     `json:"year,omitempty"`
	CitationCount   *int     `json:"citation_count,omitempty"`
	PublicationType string   `json:"publication_type,omitempty"`
	DOI             string   `json:"doi,omitempty"`
	URL             string   `json:"url,omitempty"`

	// Scoring. LexicalScore is populated only after reranking.
	// CombinedScore equals VectorScore when reranking is disabled.
	VectorScore   float64 `json:"vector_score"`
	LexicalScore  float64 `json:"lexical_score"`
	CombinedScore float64 `json:"combined_score"`

	Source string `json:"source"`
}

// SearchResponse is the final answer for one retrieval call.
type SearchResponse struct {
	Query           string         `json:"query"`
	Results         []*Result      `json:"results"`
	TotalFound      int            `json:"total_found"`
	EvidenceQuality int            `json:"evidence_quality"`
	SearchTimeMs    float64        `json:"search_time_ms"`
	Metadata        map[string]any `json:"metadata"`
}

// Paper is a document as supplied to the indexing pipeline, before encoding.
type Paper struct {
	PaperId          string            `json:"paperId"`
	Title            string            `json:"title"`
	Abstract         string            `json:"abstract"`
	Authors          []string          `json:"authors"`
	Year             *int              `json:"year"`
	CitationCount    *int              `json:"citationCount"`
	PublicationTypes []string          `json:"publicationTypes"`
	ExternalIds      map[string]string `json:"externalIds"`
	Journal          string            `json:"journal"`
	URL              string            `json:"url"`
}

// DocKey returns a canonical document key for deduplication, by priority:
// provider paper id, then DOI, then a content hash of title and year.
func (p *Paper) DocKey() string {
	if p.PaperId != "" {
		return "s2:" + p.PaperId
	}
	if doi, ok := p.ExternalIds["DOI"]; ok && doi != "" {
		return "doi:" + strings.ToLower(doi)
	}
	year := ""
	if p.Year != nil {
		year = strconv.Itoa(*p.Year)
	}
	return "ty:" + HashContent(strings.ToLower(strings.TrimSpace(p.Title))+"|"+year)
}

// EncodingText returns the text submitted to the article encoder:
// title and abstract separated by a blank line.
func (p *Paper) EncodingText() string {
	if p.Abstract == "" {
		return p.Title
	}
	return p.Title + "\n\n" + p.Abstract
}

// HashContent produces a short deterministic hex digest of text using BLAKE2b.
// Identical content always produces the same digest.
func HashContent(text string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
