package ingestion

import "github.com/poiesic/evidex/core"

// paperPayload builds the stored metadata for a paper. Keys follow the
// collection's payload contract: the retrieval side reads these exact
// spellings (with legacy fallbacks for older collections).
func paperPayload(paper *core.Paper) map[string]any {
	payload := map[string]any{
		"paper_id": paper.PaperId,
		"title":    paper.Title,
		"abstract": paper.Abstract,
		"url":      paper.URL,
		"doc_key":  paper.DocKey(),
	}

	if paper.Year != nil {
		payload["year"] = *paper.Year
	}
	citations := 0
	if paper.CitationCount != nil {
		citations = *paper.CitationCount
	}
	payload["citation_count"] = citations

	if paper.Journal != "" {
		payload["journal_name"] = paper.Journal
	}
	if len(paper.PublicationTypes) > 0 {
		payload["publication_types"] = paper.PublicationTypes
	}
	if len(paper.Authors) > 0 {
		payload["authors"] = paper.Authors
	}
	if len(paper.ExternalIds) > 0 {
		ids := make(map[string]any, len(paper.ExternalIds))
		for k, v := range paper.ExternalIds {
			ids[k] = v
		}
		payload["external_ids"] = ids
	}

	return payload
}
