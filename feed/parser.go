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


package feed

import (
	"log/slog"
	"sync"

	"github.com/poiesic/lexfeed/core"
)

// Parser decodes raw feed bytes into normalized feed items. Implementations
// must be safe for concurrent use. Parsers fill Title, URL, Description,
// PublishedAt and GUID; source attribution fields are stamped by the Monitor.
type Parser interface {
	Parse(baseURL string, data []byte) ([]*core.FeedItem, error)
}

// Registry holds feed sources with their parser resolved once at
// registration. An unknown parser kind falls back to RSS rather than
// rejecting the source.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]*registration
	logger  *slog.Logger
}

type registration struct {
	source *core.FeedSource
	parser Parser
}

// NewRegistry creates an empty source registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]*registration),
		logger:  slog.Default().With("component", "feed-registry"),
	}
}

// Register validates the source, resolves its parser, and stores both.
// Registering the same ID again replaces the previous entry.
func (r *Registry) Register(source *core.FeedSource) error {
	if err := core.ValidateSource(source); err != nil {
		return err
	}

	parser := r.resolve(source)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[source.ID] = &registration{source: source, parser: parser}
	return nil
}

func (r *Registry) resolve(source *core.FeedSource) Parser {
	switch source.Parser {
	case core.ParserRSS:
		return NewRSSParser()
	case core.ParserAtom:
		return NewAtomParser()
	case core.ParserHTMLIndex:
		return NewHTMLIndexParser()
	default:
		r.logger.Warn("unknown parser kind, falling back to rss",
			"source", source.ID, "kind", int(source.Parser))
		return NewRSSParser()
	}
}

// ParserFor returns the parser resolved for a registered source ID.
func (r *Registry) ParserFor(sourceID string) (Parser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.sources[sourceID]
	if !ok {
		return nil, ErrSourceNotRegistered
	}
	return reg.parser, nil
}

// Source returns a registered source by ID.
func (r *Registry) Source(sourceID string) (*core.FeedSource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.sources[sourceID]
	if !ok {
		return nil, ErrSourceNotRegistered
	}
	return reg.source, nil
}

// Enabled returns all enabled sources. Order is not guaranteed; callers
// that need determinism should sort by ID.
func (r *Registry) Enabled() []*core.FeedSource {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*core.FeedSource
	for _, reg := range r.sources {
		if reg.source.Enabled {
			out = append(out, reg.source)
		}
	}
	return out
}

// All returns every registered source.
func (r *Registry) All() []*core.FeedSource {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*core.FeedSource, 0, len(r.sources))
	for _, reg := range r.sources {
		out = append(out, reg.source)
	}
	return out
}
