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


// Package search implements hybrid retrieval and ranking of biomedical
// literature.
//
// A search runs as a pipeline: the query is encoded into a vector, the
// store returns an over-sampled candidate set, candidates are scored by
// lexical overlap with the query, and a combined score folds vector
// similarity, lexical overlap, and metadata bonuses (recency, citations)
// into the final ranking. Candidates below the lexical floor are dropped
// entirely. The truncated result set is then graded on a 0-5 evidence
// quality scale driven by the evidence hierarchy (meta-analyses above
// systematic reviews above RCTs above other reviews), citation impact,
// and recency.
//
// The Searcher depends only on the ai.Encoder and vectorstore.Store
// capability interfaces; it owns no model inference and no index.
package search
