package search

import (
	"strings"

	"github.com/poiesic/evidex/core"
	"github.com/poiesic/evidex/vectorstore"
)

// resultFromPoint maps a raw store point into a Result. Collections
// indexed by older pipeline versions use different payload key spellings,
// so each field checks the current key first and falls back to the legacy
// one. Malformed fields are dropped, never fatal.
func resultFromPoint(p vectorstore.Point) *core.Result {
	payload := p.Payload

	paperID := stringField(payload, "paper_id")
	if paperID == "" {
		paperID = p.ID
	}

	return &core.Result{
		PaperId:         paperID,
		Title:           stringField(payload, "title"),
		Abstract:        stringField(payload, "abstract"),
		Authors:         decodeAuthors(payload["authors"]),
		Year:            intField(payload, "year"),
		CitationCount:   firstIntField(payload, "citation_count", "citationcount"),
		PublicationType: decodePublicationType(payload),
		DOI:             decodeDOI(payload),
		URL:             stringField(payload, "url"),
		VectorScore:     p.Score,
		Source:          core.SourceTag,
	}
}

// decodeAuthors accepts both plain name lists and object lists where each
// entry carries a "name" field.
func decodeAuthors(raw any) []string {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	authors := make([]string, 0, len(list))
	for _, entry := range list {
		switch v := entry.(type) {
		case string:
			authors = append(authors, v)
		case map[string]any:
			if name, _ := v["name"].(string); name != "" {
				authors = append(authors, name)
			}
		}
	}
	return authors
}

// decodeDOI reads the DOI out of the external identifier map, which older
// collections store under "externalids" with the value sometimes nested
// one level deep.
func decodeDOI(payload map[string]any) string {
	ids, ok := payload["external_ids"].(map[string]any)
	if !ok {
		ids, ok = payload["externalids"].(map[string]any)
	}
	if !ok {
		return ""
	}

	raw := ids["DOI"]
	if raw == nil {
		raw = ids["doi"]
	}
	switch v := raw.(type) {
	case string:
		return v
	case map[string]any:
		if value, _ := v["value"].(string); value != "" {
			return value
		}
	}
	return ""
}

// decodePublicationType joins the stored publication type list into a
// single comma-separated string.
func decodePublicationType(payload map[string]any) string {
	raw := payload["publication_types"]
	if raw == nil {
		raw = payload["publicationtypes"]
	}
	list, ok := raw.([]any)
	if !ok || len(list) == 0 {
		return ""
	}
	types := make([]string, 0, len(list))
	for _, entry := range list {
		if s, ok := entry.(string); ok {
			types = append(types, s)
		}
	}
	return strings.Join(types, ", ")
}

func stringField(payload map[string]any, key string) string {
	s, _ := payload[key].(string)
	return s
}

func intField(payload map[string]any, key string) *int {
	switch v := payload[key].(type) {
	case float64:
		n := int(v)
		return &n
	case int:
		return &v
	case int64:
		n := int(v)
		return &n
	default:
		return nil
	}
}

func firstIntField(payload map[string]any, keys ...string) *int {
	for _, key := range keys {
		if v := intField(payload, key); v != nil {
			return v
		}
	}
	return nil
}
