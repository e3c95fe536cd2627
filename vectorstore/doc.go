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


// Package vectorstore defines the capability interface for vector databases.
//
// The retrieval pipeline depends only on the Store interface; concrete
// backends live in sub-packages:
//
//   - vectorstore/qdrant: REST client for a Qdrant server (the production
//     backend)
//   - vectorstore/local: embedded BadgerDB-backed store with brute-force
//     cosine scan, for development, testing, and small corpora
//
// Stores own similarity scoring and result ordering; payloads are opaque
// maps whose interpretation belongs to the caller. Filters support numeric
// range conditions (conjunctive) and value-match conditions (disjunctive),
// which is the subset of the Qdrant filter grammar the retrieval pipeline
// needs.
package vectorstore
