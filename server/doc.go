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


// Package server is the HTTP surface over the retrieval pipeline: a
// search endpoint, a health endpoint, and Bearer API-key authentication.
// Invalid requests map to 400, upstream encoder or store failures to 502;
// everything else is a 500 with the error detail in the body.
package server
