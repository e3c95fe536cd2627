package core

import (
	"errors"
	"testing"
)

func TestValidateSearchRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     *SearchRequest
		wantErr error
	}{
		{
			name:    "valid request",
			req:     NewSearchRequest("berberine insulin resistance"),
			wantErr: nil,
		},
		{
			name: "valid request with filters",
			req: &SearchRequest{
				Query:            "semaglutide weight loss",
				Limit:            10,
				YearFrom:         intPtr(2018),
				YearTo:           intPtr(2024),
				MinCitations:     intPtr(10),
				LexicalMin:       0.05,
				PublicationTypes: []string{"Review", "JournalArticle"},
				UseReranking:     true,
				UseLexicalFilter: true,
			},
			wantErr: nil,
		},
		{
			name: "contradictory year bounds are permitted",
			req: &SearchRequest{
				Query:    "statins",
				Limit:    5,
				YearFrom: intPtr(2024),
				YearTo:   intPtr(2018),
			},
			wantErr: nil,
		},
		{
			name:    "nil request",
			req:     nil,
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "empty query",
			req:     &SearchRequest{Query: "", Limit: 5},
			wantErr: ErrEmptyQuery,
		},
		{
			name:    "zero limit",
			req:     &SearchRequest{Query: "metformin", Limit: 0},
			wantErr: ErrInvalidLimit,
		},
		{
			name:    "negative limit",
			req:     &SearchRequest{Query: "metformin", Limit: -3},
			wantErr: ErrInvalidLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSearchRequest(tt.req)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePaper(t *testing.T) {
	tests := []struct {
		name    string
		paper   *Paper
		wantErr error
	}{
		{
			name:    "title only",
			paper:   &Paper{Title: "Berberine improves insulin resistance"},
			wantErr: nil,
		},
		{
			name:    "abstract only",
			paper:   &Paper{Abstract: "We examined glucose uptake in hepatocytes."},
			wantErr: nil,
		},
		{
			name:    "nil paper",
			paper:   nil,
			wantErr: ErrInvalidPaper,
		},
		{
			name:    "no text",
			paper:   &Paper{PaperId: "abc123"},
			wantErr: ErrEmptyPaperText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePaper(tt.paper)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func intPtr(v int) *int { return &v }
