package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/lexfeed/core"
)

const sampleYAML = `
store:
  path: /var/lib/lexfeed
embedding:
  host: http://embed.internal:11434
  model: nomic-embed-text
redis:
  addr: localhost:6379
collector:
  feedConcurrency: 8
  docConcurrency: 2
  staggerMin: 250ms
  staggerMax: 1s
scheduler:
  collectionInterval: 30m
  backfillAt: "02:00"
  retentionAt: "02:45"
  timezone: UTC
retention:
  maxAge: 720h
sources:
  - id: boverket-bfs
    url: https://www.boverket.se/feed.xml
    authority: boverket
    type: rss
    parser: rss
    interval: 1h
  - id: skatteverket-index
    url: https://www.skatteverket.se/foreskrifter
    authority: skatteverket
    type: html
    parser: html
    enabled: false
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lexfeed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store.Path == "" {
		t.Fatal("Expected default store path")
	}
	if cfg.Collector.FeedConcurrency != 5 || cfg.Collector.DocConcurrency != 3 {
		t.Fatalf("Unexpected default concurrency: %+v", cfg.Collector)
	}
	if cfg.Scheduler.CollectionInterval.Std() != time.Hour {
		t.Fatalf("Unexpected default interval: %v", cfg.Scheduler.CollectionInterval.Std())
	}
	if cfg.Scheduler.Location() == nil {
		t.Fatal("Expected resolved timezone")
	}
	if cfg.Retention.MaxAge.Std() != 90*24*time.Hour {
		t.Fatalf("Unexpected default retention: %v", cfg.Retention.MaxAge.Std())
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, sampleYAML)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Store.Path != "/var/lib/lexfeed" {
		t.Fatalf("Unexpected store path: %s", cfg.Store.Path)
	}
	if cfg.Embedding.Model != "nomic-embed-text" {
		t.Fatalf("Unexpected model: %s", cfg.Embedding.Model)
	}
	if cfg.Collector.StaggerMin.Std() != 250*time.Millisecond {
		t.Fatalf("Unexpected stagger min: %v", cfg.Collector.StaggerMin.Std())
	}
	if cfg.Scheduler.Location().String() != "UTC" {
		t.Fatalf("Unexpected timezone: %s", cfg.Scheduler.Location())
	}
	if len(cfg.Sources) != 2 {
		t.Fatalf("Expected 2 sources, got %d", len(cfg.Sources))
	}

	first := cfg.Sources[0].FeedSource()
	if first.Parser != core.ParserRSS || !first.Enabled || first.CheckInterval != time.Hour {
		t.Fatalf("Unexpected first source: %+v", first)
	}
	second := cfg.Sources[1].FeedSource()
	if second.Parser != core.ParserHTMLIndex {
		t.Fatalf("Expected HTML parser, got %v", second.Parser)
	}
	if second.Enabled {
		t.Fatal("Expected second source disabled")
	}
	// Missing interval falls back to an hour.
	if second.CheckInterval != time.Hour {
		t.Fatalf("Unexpected fallback interval: %v", second.CheckInterval)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LEXFEED_STORE_PATH", "/tmp/override")
	t.Setenv("LEXFEED_EMBEDDING_HOST", "http://other:9999")
	t.Setenv("LEXFEED_REDIS_ADDR", "redis:6379")

	path := writeConfig(t, sampleYAML)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store.Path != "/tmp/override" {
		t.Fatalf("Expected env override, got %s", cfg.Store.Path)
	}
	if cfg.Embedding.Host != "http://other:9999" {
		t.Fatalf("Expected env override, got %s", cfg.Embedding.Host)
	}
	if cfg.Redis.Addr != "redis:6379" {
		t.Fatalf("Expected env override, got %s", cfg.Redis.Addr)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"missing explicit file", ""},
		{"bad clock", "scheduler:\n  backfillAt: \"25:00\"\n"},
		{"bad timezone", "scheduler:\n  timezone: Mars/Olympus\n"},
		{"stagger inverted", "collector:\n  staggerMin: 5s\n  staggerMax: 1s\n"},
		{"duplicate source", "sources:\n  - id: a\n    url: http://x\n  - id: a\n    url: http://y\n"},
		{"source without url", "sources:\n  - id: a\n"},
		{"bad duration", "scheduler:\n  collectionInterval: soon\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "missing.yaml")
			if tc.yaml != "" {
				path = writeConfig(t, tc.yaml)
			}
			if _, err := Load(path); err == nil {
				t.Fatal("Expected error")
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("03:30")
	if err != nil || h != 3 || m != 30 {
		t.Fatalf("Unexpected result: %d:%d %v", h, m, err)
	}
	for _, bad := range []string{"", "3", "24:00", "12:60", "aa:bb"} {
		if _, _, err := ParseClock(bad); err == nil {
			t.Fatalf("Expected error for %q", bad)
		}
	}
}
