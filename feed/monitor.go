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


// Package feed fetches and parses regulatory feeds into normalized items.
//
// The Monitor is the only entry point the collector uses. Its contract is
// that a failure never aborts the caller: fetch and parse problems are
// logged and produce an empty item sequence plus an advisory error the
// collector folds into feed health, so one broken feed can never take down
// a collection cycle.
package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/lexfeed/core"
)

// Monitor fetches one feed and normalizes it into feed items.
type Monitor struct {
	fetcher  *Fetcher
	registry *Registry
	logger   *slog.Logger
}

// MonitorOption configures a Monitor.
type MonitorOption func(*Monitor)

// WithFetcher replaces the default fetcher.
func WithFetcher(f *Fetcher) MonitorOption {
	return func(m *Monitor) {
		m.fetcher = f
	}
}

// NewMonitor creates a Monitor over the given source registry.
func NewMonitor(registry *Registry, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		fetcher:  NewFetcher(),
		registry: registry,
		logger:   slog.Default().With("component", "feed-monitor"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Registry returns the monitor's source registry.
func (m *Monitor) Registry() *Registry {
	return m.registry
}

// Fetch retrieves and parses one source's feed. The returned slice is
// always safe to range over: failures yield an empty slice, and the error is
// advisory, for health bookkeeping and cycle statistics only. A failing feed
// must never abort its caller. Returned items carry the source attribution
// and extracted document numbers.
func (m *Monitor) Fetch(ctx context.Context, source *core.FeedSource) ([]*core.FeedItem, error) {
	parser, err := m.registry.ParserFor(source.ID)
	if err != nil {
		m.logger.Error("source not registered", "source", source.ID)
		return nil, err
	}

	data, err := m.fetcher.Fetch(ctx, source.URL)
	if err != nil {
		m.logger.Warn("feed fetch failed", "source", source.ID, "url", source.URL, "err", err)
		return nil, err
	}

	items, err := parser.Parse(source.URL, data)
	if err != nil {
		m.logger.Warn("feed parse failed", "source", source.ID, "url", source.URL, "err", err)
		return nil, err
	}

	for _, item := range items {
		item.Source = source.ID
		item.SourceType = source.FeedType
		if item.DocumentNumber == "" {
			item.DocumentNumber = ExtractDocumentNumber(source.Authority, item.Title+" "+item.Description)
		}
	}

	m.logger.Debug("feed fetched", "source", source.ID, "items", len(items))
	return items, nil
}

// HealthCheck probes one source outside the ingestion path and reports a
// snapshot for the health surface. It does not mutate source state.
func (m *Monitor) HealthCheck(ctx context.Context, source *core.FeedSource) *core.FeedHealth {
	start := time.Now()
	health := &core.FeedHealth{
		LastChecked:       start.UTC(),
		LastSuccess:       source.LastSuccess,
		ConsecutiveErrors: source.ConsecutiveErrors,
		TotalErrors:       source.TotalErrors,
		LastError:         source.LastError,
	}

	parser, err := m.registry.ParserFor(source.ID)
	if err != nil {
		health.Status = core.HealthError
		health.LastError = err.Error()
		return health
	}

	data, err := m.fetcher.Fetch(ctx, source.URL)
	health.ResponseTime = time.Since(start)
	if err != nil {
		health.Status = core.HealthError
		health.LastError = err.Error()
		return health
	}

	items, err := parser.Parse(source.URL, data)
	if err != nil {
		health.Status = core.HealthUnhealthy
		health.LastError = err.Error()
		return health
	}

	health.Status = core.HealthHealthy
	health.ItemsFound = len(items)
	if len(items) == 0 {
		health.Status = core.HealthUnhealthy
	}
	return health
}
