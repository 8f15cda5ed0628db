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


// Package storage provides the storage abstraction layer for lexfeed.
//
// This package defines repository interfaces that decouple storage
// implementation from the ingestion pipeline. It allows different storage
// backends (BadgerDB, in-memory, etc.) to be used interchangeably.
//
// # Repositories
//
//   - DocumentRepository: regulatory document versions, URL/hash lookups,
//     and the atomic SaveIntegration write
//   - KnowledgeRepository: knowledge items, chunks, vector repair queries,
//     and chunk similarity search
//   - ProcessingLogRepository: the append-only pipeline audit log
//
// # Write semantics
//
// SaveIntegration is the only write path that crosses entities. It persists
// the document, knowledge item, chunks, and the supersede marker on the
// prior version as one transaction; any failure rolls back the whole unit.
// The store is the pipeline's only shared mutable resource, and because
// uniqueness is checked by URL/hash lookup immediately before each write,
// no cross-document locking is needed. A narrow last-writer-wins race on
// identical-hash duplicate writes is accepted as harmless.
//
// # Thread safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines.
package storage
