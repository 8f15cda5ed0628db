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


// Package collector runs one ingestion cycle across all enabled feeds.
//
// Concurrency is bounded twice: a feed-level worker pool (default 5) and a
// per-feed document sub-pool (default 3), so a slow feed cannot starve
// document processing on a faster one. Feed workers after the first wait a
// jittered stagger delay before taking a slot, spreading outbound load
// against the authorities' servers. Cycle statistics are assembled only
// after a full barrier over all feed tasks.
package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/lexfeed/core"
	"github.com/poiesic/lexfeed/extract"
	"github.com/poiesic/lexfeed/feed"
	"github.com/poiesic/lexfeed/ingestion"
	"github.com/poiesic/lexfeed/storage"
)

// ErrUnknownSource is returned by TriggerCollection for source IDs that are
// not registered.
var ErrUnknownSource = errors.New("unknown feed source")

const (
	defaultFeedConcurrency = 5
	defaultDocConcurrency  = 3
	defaultStaggerMin      = 500 * time.Millisecond
	defaultStaggerMax      = 2 * time.Second

	// unhealthyThreshold is how many consecutive errors flip a source
	// from unhealthy to error.
	unhealthyThreshold = 3
)

// Collector coordinates one cycle: enumerate sources, fetch feeds, filter
// known URLs, extract and integrate new documents.
type Collector struct {
	monitor    *feed.Monitor
	docs       storage.DocumentRepository
	log        storage.ProcessingLogRepository
	extractor  extract.Extractor
	integrator *ingestion.Integrator

	feedConcurrency int
	docConcurrency  int
	staggerMin      time.Duration
	staggerMax      time.Duration

	healthMu   sync.Mutex
	itemsFound map[string]int
	logger     *slog.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithFeedConcurrency bounds concurrent feed workers. Default 5.
func WithFeedConcurrency(n int) Option {
	return func(c *Collector) {
		if n > 0 {
			c.feedConcurrency = n
		}
	}
}

// WithDocConcurrency bounds concurrent document workers per feed. Default 3.
func WithDocConcurrency(n int) Option {
	return func(c *Collector) {
		if n > 0 {
			c.docConcurrency = n
		}
	}
}

// WithStagger sets the per-index stagger jitter range. Zero max disables
// staggering, which tests rely on.
func WithStagger(min, max time.Duration) Option {
	return func(c *Collector) {
		c.staggerMin = min
		c.staggerMax = max
	}
}

// New creates a Collector.
func New(monitor *feed.Monitor, docs storage.DocumentRepository, log storage.ProcessingLogRepository, extractor extract.Extractor, integrator *ingestion.Integrator, opts ...Option) *Collector {
	c := &Collector{
		monitor:         monitor,
		docs:            docs,
		log:             log,
		extractor:       extractor,
		integrator:      integrator,
		feedConcurrency: defaultFeedConcurrency,
		docConcurrency:  defaultDocConcurrency,
		staggerMin:      defaultStaggerMin,
		staggerMax:      defaultStaggerMax,
		itemsFound:      make(map[string]int),
		logger:          slog.Default().With("component", "collector"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect runs one full cycle over all enabled sources.
func (c *Collector) Collect(ctx context.Context) (*CycleResult, error) {
	sources := c.monitor.Registry().Enabled()
	sort.Slice(sources, func(i, j int) bool { return sources[i].ID < sources[j].ID })
	return c.runCycle(ctx, sources, "scheduler")
}

// TriggerCollection runs a cycle scoped to the named sources. Unknown IDs
// appear as failed source results; the cycle itself still runs for the rest.
func (c *Collector) TriggerCollection(ctx context.Context, sourceIDs ...string) (*CycleResult, error) {
	if len(sourceIDs) == 0 {
		sources := c.monitor.Registry().Enabled()
		sort.Slice(sources, func(i, j int) bool { return sources[i].ID < sources[j].ID })
		return c.runCycle(ctx, sources, "manual")
	}

	var sources []*core.FeedSource
	var missing []SourceResult
	for _, id := range sourceIDs {
		source, err := c.monitor.Registry().Source(id)
		if err != nil {
			missing = append(missing, SourceResult{
				Source: id,
				Error:  fmt.Errorf("%w: %s", ErrUnknownSource, id).Error(),
			})
			continue
		}
		sources = append(sources, source)
	}

	result, err := c.runCycle(ctx, sources, "manual")
	if err != nil {
		return nil, err
	}
	for _, m := range missing {
		result.Sources = append(result.Sources, m)
		result.Errors++
	}
	return result, nil
}

// runCycle is the fan-out / barrier / aggregate core shared by Collect and
// TriggerCollection.
func (c *Collector) runCycle(ctx context.Context, sources []*core.FeedSource, triggeredBy string) (*CycleResult, error) {
	start := time.Now()
	cycleID := uuid.NewString()
	c.logger.Info("collection cycle starting",
		"cycle", cycleID, "sources", len(sources), "triggered_by", triggeredBy)

	pool, err := ants.NewPool(c.feedConcurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed pool: %w", err)
	}
	defer pool.Release()

	results := make([]SourceResult, len(sources))
	var wg sync.WaitGroup

	for i, source := range sources {
		wg.Add(1)
		go func(idx int, src *core.FeedSource) {
			// Stagger before acquiring a pool slot so the delay spreads
			// outbound requests, not pool occupancy.
			if delay := c.stagger(idx); delay > 0 {
				select {
				case <-ctx.Done():
					// Record the result before releasing the barrier, the
					// aggregation loop reads the slice right after Wait.
					results[idx] = SourceResult{Source: src.ID, Errors: 1, Error: ctx.Err().Error()}
					wg.Done()
					return
				case <-time.After(delay):
				}
			}

			if err := pool.Submit(func() {
				defer wg.Done()
				results[idx] = c.processFeed(ctx, src, triggeredBy)
			}); err != nil {
				results[idx] = SourceResult{Source: src.ID, Errors: 1, Error: err.Error()}
				wg.Done()
			}
		}(i, source)
	}

	// Barrier: statistics only exist once every feed task resolved.
	wg.Wait()

	result := &CycleResult{
		ID:          cycleID,
		TriggeredBy: triggeredBy,
		StartedAt:   start.UTC(),
		Duration:    time.Since(start),
		Sources:     results,
	}
	for _, sr := range results {
		result.FeedsProcessed++
		result.ItemsTotal += sr.ItemsTotal
		result.NewDocuments += sr.NewDocuments
		result.UpdatedDocs += sr.UpdatedDocs
		result.Errors += sr.Errors
	}

	c.logger.Info("collection cycle finished",
		"cycle", cycleID, "feeds", result.FeedsProcessed,
		"new_documents", result.NewDocuments, "errors", result.Errors,
		"duration", result.Duration)
	return result, nil
}

// stagger computes task i's startup delay: a uniform sample from
// [staggerMin, staggerMax] scaled by the index, capped at ten times the max
// jitter so the tail of a large inventory is not pushed out indefinitely.
func (c *Collector) stagger(index int) time.Duration {
	if index == 0 || c.staggerMax <= 0 {
		return 0
	}
	spread := c.staggerMax - c.staggerMin
	jitter := c.staggerMin
	if spread > 0 {
		jitter += time.Duration(rand.Int64N(int64(spread) + 1))
	}
	delay := time.Duration(index) * jitter
	if limit := 10 * c.staggerMax; delay > limit {
		delay = limit
	}
	return delay
}

// processFeed handles one source end to end. All failures are folded into
// the SourceResult; nothing propagates.
func (c *Collector) processFeed(ctx context.Context, source *core.FeedSource, triggeredBy string) (sr SourceResult) {
	start := time.Now()
	sr = SourceResult{Source: source.ID, Success: true}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("feed task recovered from panic", "source", source.ID, "panic", r)
			sr.Errors++
			sr.Error = fmt.Sprintf("panic: %v", r)
		}
		sr.ProcessingTime = time.Since(start)
		c.appendFeedLog(ctx, source, &sr, triggeredBy)
	}()

	items, fetchErr := c.monitor.Fetch(ctx, source)
	c.recordHealth(source, len(items), fetchErr)
	if fetchErr != nil {
		// Fetch failure: zero new documents plus a recorded error, the
		// cycle continues.
		sr.Errors++
		sr.Error = fetchErr.Error()
		return sr
	}
	sr.ItemsTotal = len(items)
	if len(items) == 0 {
		return sr
	}

	fresh := c.filterNew(ctx, items, &sr)
	if len(fresh) == 0 {
		return sr
	}

	c.processItems(ctx, source, fresh, triggeredBy, &sr)
	return sr
}

// filterNew drops items whose URL already exists in the store. The check is
// a fast-path prefilter; the integrator re-checks by URL and hash before
// any write.
func (c *Collector) filterNew(ctx context.Context, items []*core.FeedItem, sr *SourceResult) []*core.FeedItem {
	fresh := make([]*core.FeedItem, 0, len(items))
	for _, item := range items {
		known, err := c.docs.URLKnown(ctx, item.URL)
		if err != nil {
			c.logger.Warn("dedup prefilter failed, treating item as new", "url", item.URL, "err", err)
			fresh = append(fresh, item)
			continue
		}
		if known {
			sr.Skipped++
			continue
		}
		fresh = append(fresh, item)
	}
	return fresh
}

// processItems runs extraction + integration for new items through the
// bounded per-feed sub-pool.
func (c *Collector) processItems(ctx context.Context, source *core.FeedSource, items []*core.FeedItem, triggeredBy string, sr *SourceResult) {
	pool, err := ants.NewPool(c.docConcurrency)
	if err != nil {
		sr.Errors++
		sr.Error = err.Error()
		return
	}
	defer pool.Release()

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, item := range items {
		wg.Add(1)
		item := item
		if err := pool.Submit(func() {
			defer wg.Done()
			outcome, err := c.processItem(ctx, source, item, triggeredBy)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				sr.Errors++
				if sr.Error == "" {
					sr.Error = err.Error()
				}
			case outcome == ingestion.OutcomeCreated:
				sr.NewDocuments++
			case outcome == ingestion.OutcomeUpdated:
				sr.UpdatedDocs++
			default:
				sr.Skipped++
			}
		}); err != nil {
			wg.Done()
			mu.Lock()
			sr.Errors++
			mu.Unlock()
		}
	}
	wg.Wait()
}

func (c *Collector) processItem(ctx context.Context, source *core.FeedSource, item *core.FeedItem, triggeredBy string) (ingestion.Outcome, error) {
	extracted := c.extractor.Extract(ctx, item.URL)
	if !extracted.Success {
		return 0, fmt.Errorf("extraction failed for %s: %s", item.URL, extracted.Error)
	}

	result, err := c.integrator.Integrate(ctx, &ingestion.Request{
		URL:            item.URL,
		Title:          item.Title,
		Text:           extracted.Text,
		Source:         item.Source,
		SourceType:     item.SourceType,
		Authority:      source.Authority,
		DocumentNumber: item.DocumentNumber,
		PublishedAt:    item.PublishedAt,
		TriggeredBy:    triggeredBy,
		FeedURL:        source.URL,
	})
	if err != nil {
		return 0, err
	}
	return result.Outcome, nil
}

// recordHealth updates the source's health bookkeeping after a fetch.
func (c *Collector) recordHealth(source *core.FeedSource, itemCount int, fetchErr error) {
	c.healthMu.Lock()
	defer c.healthMu.Unlock()

	now := time.Now().UTC()
	source.LastChecked = now
	if fetchErr != nil {
		source.ConsecutiveErrors++
		source.TotalErrors++
		source.LastError = fetchErr.Error()
		if source.ConsecutiveErrors >= unhealthyThreshold {
			source.Health = core.HealthError
		} else {
			source.Health = core.HealthUnhealthy
		}
		return
	}

	source.ConsecutiveErrors = 0
	source.LastSuccess = now
	source.LastError = ""
	source.Health = core.HealthHealthy
	c.itemsFound[source.ID] = itemCount
}

// FeedHealth returns the health snapshot for every registered source.
func (c *Collector) FeedHealth() map[string]core.FeedHealth {
	c.healthMu.Lock()
	defer c.healthMu.Unlock()

	out := make(map[string]core.FeedHealth)
	for _, source := range c.monitor.Registry().All() {
		out[source.ID] = core.FeedHealth{
			Status:            source.Health,
			LastChecked:       source.LastChecked,
			LastSuccess:       source.LastSuccess,
			ItemsFound:        c.itemsFound[source.ID],
			ConsecutiveErrors: source.ConsecutiveErrors,
			TotalErrors:       source.TotalErrors,
			LastError:         source.LastError,
		}
	}
	return out
}

// Stats returns the 24-hour aggregate from the processing log.
func (c *Collector) Stats(ctx context.Context) (*Stats24h, error) {
	entries, err := c.log.GetSince(ctx, time.Now().UTC().Add(-24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to read processing log: %w", err)
	}

	stats := &Stats24h{Operations: len(entries)}
	for _, entry := range entries {
		switch entry.Status {
		case "created":
			stats.Created++
		case "updated":
			stats.Updated++
		case "skipped":
			stats.Skipped++
		case "error":
			stats.Errors++
		}
	}
	return stats, nil
}

func (c *Collector) appendFeedLog(ctx context.Context, source *core.FeedSource, sr *SourceResult, triggeredBy string) {
	status := "success"
	if sr.Error != "" {
		status = "error"
	}
	entry := &core.ProcessingLogEntry{
		Operation:   "collect",
		Status:      status,
		Duration:    core.DurationMicros(sr.ProcessingTime),
		ErrorMsg:    sr.Error,
		TriggeredBy: triggeredBy,
		FeedURL:     source.URL,
		Timestamp:   time.Now().UTC(),
	}
	if err := c.log.Append(ctx, entry); err != nil {
		c.logger.Warn("feed log append failed", "source", source.ID, "err", err)
	}
}
