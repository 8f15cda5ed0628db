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


// Package cache invalidates externally-held search caches when a document
// is created or superseded. Invalidation is best-effort: failures are logged
// by callers and never abort an ingestion.
package cache

import (
	"context"
	"fmt"
	"strings"
)

// Invalidator removes cached search results matching key patterns.
// Implementations must be safe for concurrent use.
type Invalidator interface {
	// Invalidate deletes all cache entries matching the given key patterns
	// and returns the number of evicted entries.
	Invalidate(ctx context.Context, patterns ...string) (int, error)

	// Close releases the underlying client.
	Close() error
}

// PatternsFor derives the cache key patterns affected by a document from its
// source and topic keywords. Keys follow the "search:<term>:*" layout used
// by downstream query caches.
func PatternsFor(source string, topics []string) []string {
	seen := make(map[string]struct{}, len(topics)+1)
	patterns := make([]string, 0, len(topics)+1)

	add := func(term string) {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			return
		}
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		patterns = append(patterns, fmt.Sprintf("search:%s:*", term))
	}

	add(source)
	for _, topic := range topics {
		add(topic)
	}
	return patterns
}
