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


// Package config loads the daemon configuration: a YAML file merged over
// built-in defaults, with environment overrides for the deployment-specific
// values (store path, embedding host, redis address).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/poiesic/lexfeed/core"
)

const (
	defaultTimezone = "Europe/Stockholm"

	configPathEnv     = "LEXFEED_CONFIG"
	storePathEnv      = "LEXFEED_STORE_PATH"
	embeddingHostEnv  = "LEXFEED_EMBEDDING_HOST"
	embeddingModelEnv = "LEXFEED_EMBEDDING_MODEL"
	redisAddrEnv      = "LEXFEED_REDIS_ADDR"
)

// ErrInvalidConfig wraps all validation failures.
var ErrInvalidConfig = errors.New("invalid configuration")

// Duration is a time.Duration that unmarshals from YAML strings like "90s"
// or "24h".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the full daemon configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Redis     RedisConfig     `yaml:"redis"`
	Collector CollectorConfig `yaml:"collector"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Retention RetentionConfig `yaml:"retention"`
	Sources   []SourceConfig  `yaml:"sources"`
}

// StoreConfig locates the document store.
type StoreConfig struct {
	Path     string `yaml:"path"`
	InMemory bool   `yaml:"inMemory"`
}

// EmbeddingConfig points at the OpenAI-compatible embedding endpoint.
type EmbeddingConfig struct {
	Host          string `yaml:"host"`
	Model         string `yaml:"model"`
	MaxInputChars int    `yaml:"maxInputChars"`
}

// RedisConfig configures search-cache invalidation. An empty address
// disables invalidation entirely.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// CollectorConfig bounds the collection cycle's concurrency and stagger.
type CollectorConfig struct {
	FeedConcurrency int      `yaml:"feedConcurrency"`
	DocConcurrency  int      `yaml:"docConcurrency"`
	StaggerMin      Duration `yaml:"staggerMin"`
	StaggerMax      Duration `yaml:"staggerMax"`
}

// SchedulerConfig drives the recurring jobs.
type SchedulerConfig struct {
	CollectionInterval Duration `yaml:"collectionInterval"`
	CollectOnStart     bool     `yaml:"collectOnStart"`
	BackfillAt         string   `yaml:"backfillAt"`
	RetentionAt        string   `yaml:"retentionAt"`
	Timezone           string   `yaml:"timezone"`
	TaskTimeout        Duration `yaml:"taskTimeout"`

	location *time.Location
}

// Location resolves the configured timezone. Load validates it, so the
// fallback only fires on a zero-value config.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, err := time.LoadLocation(defaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// RetentionConfig drives the superseded-document archive sweep.
type RetentionConfig struct {
	MaxAge    Duration `yaml:"maxAge"`
	BatchSize int      `yaml:"batchSize"`
}

// SourceConfig describes one regulatory feed.
type SourceConfig struct {
	ID        string   `yaml:"id"`
	URL       string   `yaml:"url"`
	Authority string   `yaml:"authority"`
	Type      string   `yaml:"type"`
	Parser    string   `yaml:"parser"`
	Interval  Duration `yaml:"interval"`
	Enabled   *bool    `yaml:"enabled"`
}

// FeedSource converts the config entry into a core source. A missing
// enabled flag means enabled.
func (s SourceConfig) FeedSource() *core.FeedSource {
	enabled := true
	if s.Enabled != nil {
		enabled = *s.Enabled
	}
	interval := s.Interval.Std()
	if interval <= 0 {
		interval = time.Hour
	}
	return &core.FeedSource{
		ID:            s.ID,
		URL:           s.URL,
		Authority:     s.Authority,
		FeedType:      s.Type,
		Parser:        ParserKindFor(s.Parser),
		Enabled:       enabled,
		CheckInterval: interval,
	}
}

// ParserKindFor maps a config parser name to its kind. Unknown names fall
// back to RSS, matching the registry's own fallback.
func ParserKindFor(name string) core.ParserKind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "atom":
		return core.ParserAtom
	case "html", "htmlindex", "html-index":
		return core.ParserHTMLIndex
	default:
		return core.ParserRSS
	}
}

// ParseClock parses a "HH:MM" daily-run time.
func ParseClock(value string) (hour, minute int, err error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid clock time %q, want HH:MM", value)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid clock time %q, want HH:MM", value)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid clock time %q, want HH:MM", value)
	}
	return hour, minute, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Store: StoreConfig{Path: "./data/lexfeed"},
		Embedding: EmbeddingConfig{
			Host:          "http://localhost:11434",
			Model:         "embeddinggemma",
			MaxInputChars: 8000,
		},
		Collector: CollectorConfig{
			FeedConcurrency: 5,
			DocConcurrency:  3,
			StaggerMin:      Duration(500 * time.Millisecond),
			StaggerMax:      Duration(2 * time.Second),
		},
		Scheduler: SchedulerConfig{
			CollectionInterval: Duration(time.Hour),
			CollectOnStart:     true,
			BackfillAt:         "03:30",
			RetentionAt:        "04:15",
			Timezone:           defaultTimezone,
			TaskTimeout:        Duration(30 * time.Minute),
		},
		Retention: RetentionConfig{
			MaxAge:    Duration(90 * 24 * time.Hour),
			BatchSize: 500,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file (the given
// path, or $LEXFEED_CONFIG when path is empty), then environment overrides.
// An explicitly named file that cannot be read or parsed is an error; a
// missing implicit one is not.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err != nil && explicit:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		case err != nil:
			slog.Warn("config file not readable, using defaults", "path", path, "err", err)
		default:
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(storePathEnv); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv(embeddingHostEnv); v != "" {
		c.Embedding.Host = v
	}
	if v := os.Getenv(embeddingModelEnv); v != "" {
		c.Embedding.Model = v
	}
	if v := os.Getenv(redisAddrEnv); v != "" {
		c.Redis.Addr = v
	}
}

// normalize validates the loaded configuration and resolves derived values.
func (c *Config) normalize() error {
	if c.Store.Path == "" && !c.Store.InMemory {
		return fmt.Errorf("%w: store path is required", ErrInvalidConfig)
	}
	if c.Embedding.Host == "" {
		return fmt.Errorf("%w: embedding host is required", ErrInvalidConfig)
	}
	if c.Collector.FeedConcurrency <= 0 || c.Collector.DocConcurrency <= 0 {
		return fmt.Errorf("%w: collector concurrency must be positive", ErrInvalidConfig)
	}
	if c.Collector.StaggerMin.Std() > c.Collector.StaggerMax.Std() {
		return fmt.Errorf("%w: staggerMin exceeds staggerMax", ErrInvalidConfig)
	}
	if c.Scheduler.CollectionInterval.Std() <= 0 {
		return fmt.Errorf("%w: collection interval must be positive", ErrInvalidConfig)
	}
	for _, at := range []string{c.Scheduler.BackfillAt, c.Scheduler.RetentionAt} {
		if _, _, err := ParseClock(at); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidConfig, tz)
	}
	c.Scheduler.Timezone = tz
	c.Scheduler.location = loc

	if c.Retention.MaxAge.Std() <= 0 {
		c.Retention.MaxAge = Default().Retention.MaxAge
	}
	if c.Retention.BatchSize <= 0 {
		c.Retention.BatchSize = Default().Retention.BatchSize
	}

	seen := make(map[string]struct{}, len(c.Sources))
	for i, src := range c.Sources {
		if src.ID == "" || src.URL == "" {
			return fmt.Errorf("%w: source %d needs id and url", ErrInvalidConfig, i)
		}
		if _, dup := seen[src.ID]; dup {
			return fmt.Errorf("%w: duplicate source id %q", ErrInvalidConfig, src.ID)
		}
		seen[src.ID] = struct{}{}
	}
	return nil
}
