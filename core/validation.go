// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateSearchRequest validates a SearchRequest according to domain rules.
//
// Validation rules:
//   - Query must not be empty
//   - Limit must be positive
//
// NOT validated (handled permissively downstream):
//   - YearFrom > YearTo (treated as an empty-intersection filter)
//   - Negative LexicalMin (a floor of zero or below admits everything)
func ValidateSearchRequest(req *SearchRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidRequest)
	}

	if req.Query == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, ErrEmptyQuery)
	}

	if req.Limit <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, ErrInvalidLimit)
	}

	return nil
}

// ValidatePaper validates a Paper before indexing.
//
// Validation rules:
//   - Title or abstract must be present (there must be text to encode)
func ValidatePaper(paper *Paper) error {
	if paper == nil {
		return fmt.Errorf("%w: paper is nil", ErrInvalidPaper)
	}

	if paper.Title == "" && paper.Abstract == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPaper, ErrEmptyPaperText)
	}

	return nil
}
