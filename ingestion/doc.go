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


// Package ingestion indexes paper corpora into the vector store.
//
// The pipeline validates papers, encodes title and abstract in concurrent
// batches through the article encoder, and upserts points keyed by a
// canonical document key (provider id, then DOI, then a content hash), so
// running the same corpus twice updates rather than duplicates.
package ingestion
