package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/poiesic/lexfeed/core"
)

func testSource(id, url string, kind core.ParserKind) *core.FeedSource {
	return &core.FeedSource{
		ID:            id,
		URL:           url,
		Authority:     "test-authority",
		FeedType:      "rss",
		Parser:        kind,
		Enabled:       true,
		CheckInterval: time.Hour,
	}
}

func TestMonitorFetchStampsAttribution(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssSample))
	}))
	defer server.Close()

	registry := NewRegistry()
	source := testSource("feed-a", server.URL, core.ParserRSS)
	if err := registry.Register(source); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	m := NewMonitor(registry, WithFetcher(NewFetcher(WithMaxAttempts(1))))
	items, err := m.Fetch(context.Background(), source)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	for _, item := range items {
		if item.Source != "feed-a" {
			t.Fatalf("Expected source stamped, got %q", item.Source)
		}
		if item.SourceType != "rss" {
			t.Fatalf("Expected source type stamped, got %q", item.SourceType)
		}
	}
	if items[0].DocumentNumber != "2024:3" {
		t.Fatalf("Expected document number extracted, got %q", items[0].DocumentNumber)
	}
}

func TestMonitorFetchServerErrorYieldsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	registry := NewRegistry()
	source := testSource("feed-b", server.URL, core.ParserRSS)
	if err := registry.Register(source); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	m := NewMonitor(registry, WithFetcher(NewFetcher(WithMaxAttempts(1), WithRetryDelay(time.Millisecond))))
	items, err := m.Fetch(context.Background(), source)
	if err == nil {
		t.Fatal("Expected advisory error on fetch failure")
	}
	if len(items) != 0 {
		t.Fatalf("Expected empty sequence on fetch failure, got %d items", len(items))
	}
}

func TestMonitorFetchParseErrorYieldsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<<< definitely not xml"))
	}))
	defer server.Close()

	registry := NewRegistry()
	source := testSource("feed-c", server.URL, core.ParserRSS)
	if err := registry.Register(source); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	m := NewMonitor(registry, WithFetcher(NewFetcher(WithMaxAttempts(1))))
	if items, _ := m.Fetch(context.Background(), source); len(items) != 0 {
		t.Fatalf("Expected empty sequence on parse failure, got %d items", len(items))
	}
}

func TestMonitorUnknownParserFallsBackToRSS(t *testing.T) {
	registry := NewRegistry()
	source := testSource("feed-d", "https://example.gov/feed", core.ParserKind(99))
	if err := registry.Register(source); err != nil {
		t.Fatalf("Register must tolerate unknown parser kind: %v", err)
	}

	parser, err := registry.ParserFor("feed-d")
	if err != nil {
		t.Fatalf("ParserFor failed: %v", err)
	}
	if _, ok := parser.(*RSSParser); !ok {
		t.Fatalf("Expected RSS fallback, got %T", parser)
	}
}

func TestMonitorHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssSample))
	}))
	defer server.Close()

	registry := NewRegistry()
	source := testSource("feed-e", server.URL, core.ParserRSS)
	if err := registry.Register(source); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	m := NewMonitor(registry, WithFetcher(NewFetcher(WithMaxAttempts(1))))
	health := m.HealthCheck(context.Background(), source)
	if health.Status != core.HealthHealthy {
		t.Fatalf("Expected healthy, got %s (%s)", health.Status, health.LastError)
	}
	if health.ItemsFound != 2 {
		t.Fatalf("Expected 2 items found, got %d", health.ItemsFound)
	}
	if health.ResponseTime <= 0 {
		t.Fatal("Expected response time measured")
	}
}

func TestMonitorHealthCheckUnreachable(t *testing.T) {
	registry := NewRegistry()
	source := testSource("feed-f", "http://127.0.0.1:1/feed", core.ParserRSS)
	if err := registry.Register(source); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	m := NewMonitor(registry, WithFetcher(NewFetcher(WithMaxAttempts(1), WithRetryDelay(time.Millisecond))))
	health := m.HealthCheck(context.Background(), source)
	if health.Status != core.HealthError {
		t.Fatalf("Expected error status, got %s", health.Status)
	}
	if health.LastError == "" {
		t.Fatal("Expected error recorded")
	}
}
