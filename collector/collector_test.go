package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poiesic/lexfeed/ai/mock"
	"github.com/poiesic/lexfeed/core"
	"github.com/poiesic/lexfeed/extract"
	"github.com/poiesic/lexfeed/feed"
	"github.com/poiesic/lexfeed/ingestion"
	"github.com/poiesic/lexfeed/storage"
	badgerstore "github.com/poiesic/lexfeed/storage/badger"
)

// feedServer serves an RSS feed at /feed.xml and document pages at /doc/N.
func feedServer(t *testing.T, itemCount int, docDelay time.Duration, inflight *atomic.Int32, maxSeen *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/feed.xml", func(w http.ResponseWriter, r *http.Request) {
		// Item URLs inherit the feed's src tag so several sources on one
		// server yield distinct document URLs.
		src := r.URL.Query().Get("src")
		var b strings.Builder
		b.WriteString(`<?xml version="1.0"?><rss version="2.0"><channel>`)
		for i := 0; i < itemCount; i++ {
			fmt.Fprintf(&b, `<item><title>Regulation %d on tax reporting</title><link>/doc/%d?src=%s</link><pubDate>Mon, 06 May 2024 10:00:00 +0000</pubDate></item>`, i, i, src)
		}
		b.WriteString(`</channel></rss>`)
		w.Write([]byte(b.String()))
	})

	mux.HandleFunc("/doc/", func(w http.ResponseWriter, r *http.Request) {
		if inflight != nil {
			now := inflight.Add(1)
			for {
				seen := maxSeen.Load()
				if now <= seen || maxSeen.CompareAndSwap(seen, now) {
					break
				}
			}
			defer inflight.Add(-1)
		}
		if docDelay > 0 {
			time.Sleep(docDelay)
		}
		fmt.Fprintf(w, `<html><body><main><h1>Document %s</h1><p>Mandatory provisions of the regulation enter into force immediately for all entities.</p></main></body></html>`, r.URL.Path)
	})

	return httptest.NewServer(mux)
}

type collectorEnv struct {
	registry  *feed.Registry
	collector *Collector
	docs      storage.DocumentRepository
	log       storage.ProcessingLogRepository
	cleanup   func()
}

func newCollectorEnv(t *testing.T, opts ...Option) *collectorEnv {
	t.Helper()
	docs, _, log, backend, err := badgerstore.NewMemoryStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	fetcher := feed.NewFetcher(feed.WithMaxAttempts(1), feed.WithRetryDelay(time.Millisecond))
	registry := feed.NewRegistry()
	monitor := feed.NewMonitor(registry, feed.WithFetcher(fetcher))
	extractor := extract.NewHTMLExtractor(fetcher)
	integrator := ingestion.NewIntegrator(docs, log, mock.NewMockEmbedder())

	baseOpts := []Option{WithStagger(0, 0)}
	baseOpts = append(baseOpts, opts...)
	c := New(monitor, docs, log, extractor, integrator, baseOpts...)

	return &collectorEnv{
		registry:  registry,
		collector: c,
		docs:      docs,
		log:       log,
		cleanup: func() {
			log.Close()
			docs.Close()
			backend.Close()
		},
	}
}

func registerSource(t *testing.T, env *collectorEnv, id, url string) *core.FeedSource {
	t.Helper()
	source := &core.FeedSource{
		ID:            id,
		URL:           url,
		Authority:     "test-authority",
		FeedType:      "rss",
		Parser:        core.ParserRSS,
		Enabled:       true,
		CheckInterval: time.Hour,
	}
	if err := env.registry.Register(source); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return source
}

func TestCollectIngestsAndIsIdempotent(t *testing.T) {
	server := feedServer(t, 3, 0, nil, nil)
	defer server.Close()

	env := newCollectorEnv(t)
	defer env.cleanup()
	registerSource(t, env, "feed-a", server.URL+"/feed.xml")

	result, err := env.collector.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if result.ID == "" {
		t.Fatal("Expected cycle ID")
	}
	if result.FeedsProcessed != 1 {
		t.Fatalf("Expected 1 feed, got %d", result.FeedsProcessed)
	}
	if result.NewDocuments != 3 {
		t.Fatalf("Expected 3 new documents, got %d", result.NewDocuments)
	}
	if result.Errors != 0 {
		t.Fatalf("Expected no errors, got %d: %+v", result.Errors, result.Sources)
	}

	// Idempotent re-run: every URL now exists, the prefilter drops all.
	again, err := env.collector.Collect(context.Background())
	if err != nil {
		t.Fatalf("Second collect failed: %v", err)
	}
	if again.NewDocuments != 0 {
		t.Fatalf("Expected 0 new documents on re-run, got %d", again.NewDocuments)
	}
	if again.Sources[0].Skipped != 3 {
		t.Fatalf("Expected 3 skipped, got %d", again.Sources[0].Skipped)
	}
	if again.ID == result.ID {
		t.Fatal("Expected a fresh cycle ID per invocation")
	}
}

func TestCollectFeedFailureDoesNotAbortSiblings(t *testing.T) {
	okServer := feedServer(t, 2, 0, nil, nil)
	defer okServer.Close()
	badServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer badServer.Close()

	env := newCollectorEnv(t)
	defer env.cleanup()
	registerSource(t, env, "feed-bad", badServer.URL+"/feed.xml")
	registerSource(t, env, "feed-good", okServer.URL+"/feed.xml")

	result, err := env.collector.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if result.FeedsProcessed != 2 {
		t.Fatalf("Expected both feeds processed, got %d", result.FeedsProcessed)
	}
	if result.NewDocuments != 2 {
		t.Fatalf("Expected sibling feed to complete, got %d new documents", result.NewDocuments)
	}

	var bad, good SourceResult
	for _, sr := range result.Sources {
		switch sr.Source {
		case "feed-bad":
			bad = sr
		case "feed-good":
			good = sr
		}
	}
	// HTTP 500 is success-with-zero-new-documents plus a recorded error.
	if !bad.Success {
		t.Fatal("Fetch failure must not mark the source as failed")
	}
	if bad.NewDocuments != 0 || bad.Errors != 1 || bad.Error == "" {
		t.Fatalf("Unexpected failing-source result: %+v", bad)
	}
	if !good.Success || good.NewDocuments != 2 {
		t.Fatalf("Unexpected sibling result: %+v", good)
	}
}

func TestCollectConcurrencyBound(t *testing.T) {
	var inflight, maxSeen atomic.Int32
	server := feedServer(t, 1, 30*time.Millisecond, &inflight, &maxSeen)
	defer server.Close()

	env := newCollectorEnv(t, WithFeedConcurrency(2), WithDocConcurrency(1))
	defer env.cleanup()

	// Distinct URLs per source so the prefilter does not collapse them.
	for i := 0; i < 6; i++ {
		registerSource(t, env, fmt.Sprintf("feed-%d", i), fmt.Sprintf("%s/feed.xml?src=%d", server.URL, i))
	}

	if _, err := env.collector.Collect(context.Background()); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	// Feed pool of 2 with one doc worker each bounds concurrent document
	// fetches at 2.
	if maxSeen.Load() > 2 {
		t.Fatalf("Concurrency cap exceeded: %d simultaneous document fetches", maxSeen.Load())
	}
}

func TestStaggerDelay(t *testing.T) {
	c := New(nil, nil, nil, nil, nil, WithStagger(10*time.Millisecond, 20*time.Millisecond))
	if d := c.stagger(0); d != 0 {
		t.Fatalf("Task 0 must start immediately, got %v", d)
	}
	for i := 1; i < 5; i++ {
		d := c.stagger(i)
		if d < time.Duration(i)*10*time.Millisecond || d > time.Duration(i)*20*time.Millisecond {
			t.Fatalf("Stagger for index %d out of range: %v", i, d)
		}
	}
	// Large index is capped at 10x the max jitter.
	if d := c.stagger(1000); d != 200*time.Millisecond {
		t.Fatalf("Expected capped stagger 200ms, got %v", d)
	}
}

func TestCollectCancelledContextRecordsEverySource(t *testing.T) {
	server := feedServer(t, 1, 0, nil, nil)
	defer server.Close()

	env := newCollectorEnv(t, WithStagger(50*time.Millisecond, 60*time.Millisecond))
	defer env.cleanup()
	for i := 0; i < 8; i++ {
		registerSource(t, env, fmt.Sprintf("feed-%d", i), fmt.Sprintf("%s/feed.xml?src=%d", server.URL, i))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := env.collector.Collect(ctx)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	// Every staggered task hits the cancelled context while waiting for its
	// delay; each one must still land in the result slice before the
	// barrier releases.
	if result.FeedsProcessed != 8 {
		t.Fatalf("Expected 8 sources reported, got %d", result.FeedsProcessed)
	}
	if result.Errors != 8 {
		t.Fatalf("Expected one error per source, got %d: %+v", result.Errors, result.Sources)
	}
	for _, sr := range result.Sources {
		if sr.Source == "" || sr.Error == "" {
			t.Fatalf("Expected cancellation recorded for every source: %+v", sr)
		}
	}
}

func TestTriggerCollectionScoped(t *testing.T) {
	serverA := feedServer(t, 2, 0, nil, nil)
	defer serverA.Close()
	serverB := feedServer(t, 2, 0, nil, nil)
	defer serverB.Close()

	env := newCollectorEnv(t)
	defer env.cleanup()
	registerSource(t, env, "feed-a", serverA.URL+"/feed.xml")
	registerSource(t, env, "feed-b", serverB.URL+"/feed.xml")

	result, err := env.collector.TriggerCollection(context.Background(), "feed-a", "feed-missing")
	if err != nil {
		t.Fatalf("TriggerCollection failed: %v", err)
	}
	if result.TriggeredBy != "manual" {
		t.Fatalf("Expected manual trigger, got %q", result.TriggeredBy)
	}
	if result.NewDocuments != 2 {
		t.Fatalf("Expected only feed-a collected, got %d new documents", result.NewDocuments)
	}

	var missing *SourceResult
	for i := range result.Sources {
		if result.Sources[i].Source == "feed-missing" {
			missing = &result.Sources[i]
		}
	}
	if missing == nil {
		t.Fatal("Expected unknown source reported in results")
	}
	if missing.Success || missing.Error == "" {
		t.Fatalf("Expected failed result for unknown source: %+v", missing)
	}
}

func TestFeedHealthBookkeeping(t *testing.T) {
	badServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer badServer.Close()

	env := newCollectorEnv(t)
	defer env.cleanup()
	registerSource(t, env, "feed-flaky", badServer.URL+"/feed.xml")

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := env.collector.Collect(ctx); err != nil {
			t.Fatalf("Collect failed: %v", err)
		}
	}

	health := env.collector.FeedHealth()["feed-flaky"]
	if health.ConsecutiveErrors != 3 || health.TotalErrors != 3 {
		t.Fatalf("Unexpected error counts: %+v", health)
	}
	if health.Status != core.HealthError {
		t.Fatalf("Expected error state after repeated failures, got %s", health.Status)
	}
	if health.LastError == "" {
		t.Fatal("Expected last error recorded")
	}
}

func TestStatsAggregation(t *testing.T) {
	server := feedServer(t, 2, 0, nil, nil)
	defer server.Close()

	env := newCollectorEnv(t)
	defer env.cleanup()
	registerSource(t, env, "feed-a", server.URL+"/feed.xml")

	ctx := context.Background()
	if _, err := env.collector.Collect(ctx); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	stats, err := env.collector.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Created != 2 {
		t.Fatalf("Expected 2 created entries, got %+v", stats)
	}
	if stats.Operations < 3 {
		t.Fatalf("Expected integrate + collect entries, got %d", stats.Operations)
	}
}
