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


package lexfeed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/lexfeed/ai"
	"github.com/poiesic/lexfeed/ai/openai"
	"github.com/poiesic/lexfeed/backfill"
	"github.com/poiesic/lexfeed/cache"
	"github.com/poiesic/lexfeed/collector"
	"github.com/poiesic/lexfeed/config"
	"github.com/poiesic/lexfeed/core"
	"github.com/poiesic/lexfeed/extract"
	"github.com/poiesic/lexfeed/feed"
	"github.com/poiesic/lexfeed/ingestion"
	"github.com/poiesic/lexfeed/scheduler"
	"github.com/poiesic/lexfeed/storage"
	"github.com/poiesic/lexfeed/storage/badger"
)

// Task names registered with the scheduler.
const (
	TaskCollection = "collection"
	TaskBackfill   = "vector-backfill"
	TaskRetention  = "retention-sweep"
)

// Service assembles the full ingestion daemon: store, feed registry,
// collector, scheduler, embedding backfill and retention sweep.
type Service struct {
	cfg *config.Config

	backend       *badger.Backend
	docRepo       storage.DocumentRepository
	knowledgeRepo storage.KnowledgeRepository
	logRepo       storage.ProcessingLogRepository

	invalidator cache.Invalidator
	registry    *feed.Registry
	collector   *collector.Collector
	backfiller  *backfill.Backfiller
	archiver    *ingestion.Archiver
	scheduler   *scheduler.Scheduler

	logger *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	embedder ai.Embedder
}

// WithEmbedder replaces the OpenAI-compatible embedder, mainly for tests.
func WithEmbedder(e ai.Embedder) ServiceOption {
	return func(o *serviceOptions) {
		o.embedder = e
	}
}

// NewService wires all components from the configuration. The returned
// service is idle until Start.
func NewService(cfg *config.Config, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(cfg.Store.Path, cfg.Store.InMemory)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	docRepo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	knowledgeRepo := badger.NewKnowledgeRepository(backend)
	logRepo, err := badger.NewLogRepository(backend)
	if err != nil {
		docRepo.Close()
		backend.Close()
		return nil, err
	}

	closeStore := func() {
		logRepo.Close()
		docRepo.Close()
		backend.Close()
	}

	embedder := options.embedder
	if embedder == nil {
		embedder, err = openai.NewEmbedder(ai.NewConfig(
			ai.WithEmbeddingHost(cfg.Embedding.Host),
			ai.WithEmbeddingModel(cfg.Embedding.Model),
			ai.WithMaxInputChars(cfg.Embedding.MaxInputChars),
		))
		if err != nil {
			closeStore()
			return nil, fmt.Errorf("failed to create embedder: %w", err)
		}
	}

	var invalidator cache.Invalidator = cache.NewNoopInvalidator()
	if cfg.Redis.Addr != "" {
		invalidator, err = cache.NewRedisInvalidator(context.Background(), cfg.Redis.Addr,
			cache.WithPassword(cfg.Redis.Password), cache.WithDB(cfg.Redis.DB))
		if err != nil {
			closeStore()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
	}

	registry := feed.NewRegistry()
	for _, src := range cfg.Sources {
		if err := registry.Register(src.FeedSource()); err != nil {
			invalidator.Close()
			closeStore()
			return nil, fmt.Errorf("failed to register source %s: %w", src.ID, err)
		}
	}

	fetcher := feed.NewFetcher()
	monitor := feed.NewMonitor(registry, feed.WithFetcher(fetcher))
	extractor := extract.NewHTMLExtractor(fetcher)

	integrator := ingestion.NewIntegrator(docRepo, logRepo, embedder,
		ingestion.WithMaxEmbedChars(cfg.Embedding.MaxInputChars),
		ingestion.WithInvalidator(invalidator),
	)

	coll := collector.New(monitor, docRepo, logRepo, extractor, integrator,
		collector.WithFeedConcurrency(cfg.Collector.FeedConcurrency),
		collector.WithDocConcurrency(cfg.Collector.DocConcurrency),
		collector.WithStagger(cfg.Collector.StaggerMin.Std(), cfg.Collector.StaggerMax.Std()),
	)

	backfillCfg := backfill.DefaultConfig()
	if cfg.Embedding.MaxInputChars > 0 {
		backfillCfg.MaxInputChars = cfg.Embedding.MaxInputChars
	}
	backfiller := backfill.NewBackfiller(knowledgeRepo, embedder, backfillCfg, nil)

	archiver := ingestion.NewArchiver(docRepo, logRepo, cfg.Retention.MaxAge.Std(), cfg.Retention.BatchSize)

	svc := &Service{
		cfg:           cfg,
		backend:       backend,
		docRepo:       docRepo,
		knowledgeRepo: knowledgeRepo,
		logRepo:       logRepo,
		invalidator:   invalidator,
		registry:      registry,
		collector:     coll,
		backfiller:    backfiller,
		archiver:      archiver,
		logger:        slog.Default().With("component", "service"),
	}

	if err := svc.buildScheduler(); err != nil {
		invalidator.Close()
		closeStore()
		return nil, err
	}
	return svc, nil
}

// buildScheduler registers the recurring jobs. Daily times were validated
// by config.Load.
func (s *Service) buildScheduler() error {
	sched, err := scheduler.New()
	if err != nil {
		return err
	}

	tasks := []*scheduler.Task{
		{
			Name:           TaskCollection,
			Interval:       s.cfg.Scheduler.CollectionInterval.Std(),
			Fn:             s.runCollection,
			Enabled:        true,
			RunImmediately: s.cfg.Scheduler.CollectOnStart,
			Timeout:        s.cfg.Scheduler.TaskTimeout.Std(),
		},
		{
			Name:    TaskBackfill,
			DailyAt: s.dailyTime(s.cfg.Scheduler.BackfillAt),
			Fn:      s.runBackfill,
			Enabled: true,
			Timeout: s.cfg.Scheduler.TaskTimeout.Std(),
			Offload: true,
		},
		{
			Name:    TaskRetention,
			DailyAt: s.dailyTime(s.cfg.Scheduler.RetentionAt),
			Fn:      s.runRetention,
			Enabled: true,
			Timeout: s.cfg.Scheduler.TaskTimeout.Std(),
		},
	}
	for _, task := range tasks {
		if err := sched.Register(task); err != nil {
			return fmt.Errorf("failed to register task %s: %w", task.Name, err)
		}
	}

	s.scheduler = sched
	return nil
}

func (s *Service) dailyTime(clock string) *scheduler.DailyTime {
	hour, minute, _ := config.ParseClock(clock)
	return &scheduler.DailyTime{Hour: hour, Minute: minute, Location: s.cfg.Scheduler.Location()}
}

func (s *Service) runCollection(ctx context.Context) error {
	result, err := s.collector.Collect(ctx)
	if err != nil {
		return err
	}
	s.logger.Info("scheduled collection finished",
		"cycle", result.ID, "new_documents", result.NewDocuments, "errors", result.Errors)
	return nil
}

func (s *Service) runBackfill(ctx context.Context) error {
	result, err := s.backfiller.Run(ctx)
	if err != nil {
		return err
	}
	if result.ItemsRepaired+result.ChunksRepaired > 0 {
		s.logger.Info("vector backfill finished",
			"items", result.ItemsRepaired, "chunks", result.ChunksRepaired, "failures", result.Failures)
	}
	return nil
}

func (s *Service) runRetention(ctx context.Context) error {
	archived, err := s.archiver.Sweep(ctx)
	if err != nil {
		return err
	}
	if archived > 0 {
		s.logger.Info("retention sweep finished", "archived", archived)
	}
	return nil
}

// Start launches the scheduler. It returns immediately.
func (s *Service) Start() error {
	return s.scheduler.Start()
}

// Stop halts the scheduler and waits for in-flight jobs.
func (s *Service) Stop() {
	s.scheduler.Stop()
}

// TriggerCollection runs a manual cycle, optionally scoped to source IDs.
func (s *Service) TriggerCollection(ctx context.Context, sourceIDs ...string) (*collector.CycleResult, error) {
	return s.collector.TriggerCollection(ctx, sourceIDs...)
}

// Backfill runs the vector repair job once, outside its daily schedule.
func (s *Service) Backfill(ctx context.Context) (*backfill.Result, error) {
	return s.backfiller.Run(ctx)
}

// FeedHealth reports the per-source health snapshot.
func (s *Service) FeedHealth() map[string]core.FeedHealth {
	return s.collector.FeedHealth()
}

// Stats aggregates the last 24 hours of processing log entries.
func (s *Service) Stats(ctx context.Context) (*collector.Stats24h, error) {
	return s.collector.Stats(ctx)
}

// RecentLog returns the newest processing log entries, newest first.
func (s *Service) RecentLog(ctx context.Context, limit int) ([]*core.ProcessingLogEntry, error) {
	return s.logRepo.GetRecent(ctx, limit)
}

// TaskStatus reports the scheduler's view of every registered job.
func (s *Service) TaskStatus() map[string]scheduler.TaskStatus {
	return s.scheduler.Status()
}

// Registry exposes the feed source registry.
func (s *Service) Registry() *feed.Registry {
	return s.registry
}

// DocumentRepository exposes the document store.
func (s *Service) DocumentRepository() storage.DocumentRepository {
	return s.docRepo
}

// KnowledgeRepository exposes the knowledge store.
func (s *Service) KnowledgeRepository() storage.KnowledgeRepository {
	return s.knowledgeRepo
}

// Close releases every resource. Stop must have been called first if Start
// was.
func (s *Service) Close() error {
	if err := s.invalidator.Close(); err != nil {
		s.logger.Error("error closing cache invalidator", "err", err)
	}
	if err := s.logRepo.Close(); err != nil {
		s.logger.Error("error closing log repository", "err", err)
		return err
	}
	if err := s.knowledgeRepo.Close(); err != nil {
		s.logger.Error("error closing knowledge repository", "err", err)
		return err
	}
	if err := s.docRepo.Close(); err != nil {
		s.logger.Error("error closing document repository", "err", err)
		return err
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
