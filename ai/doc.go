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


// Package ai provides the embedding abstraction used by the ingestion
// pipeline and the backfill job.
//
// The package defines the Embedder interface so the integrator and the
// backfill worker depend on an abstraction rather than a concrete client.
// Two implementations ship with the module:
//
//   - ai/openai: production implementation against OpenAI-compatible APIs
//   - ai/mock: test double with injectable function fields
//
// Public constructors (openai.NewEmbedder) return the ai.Embedder interface
// to enforce abstraction. The mock constructor returns the concrete type so
// tests can inject behavior and assert call counts.
//
// Embedding failures are treated as degraded-mode events by callers: a
// document is still persisted when its vectors cannot be produced, and the
// backfill job repairs the gap later.
package ai
