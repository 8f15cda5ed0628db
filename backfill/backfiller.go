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


// Package backfill repairs knowledge records that were persisted without
// embeddings. Embedding failures during ingestion are tolerated and leave
// the vector absent; the backfiller finds those records in batches and
// re-embeds them with retry.
package backfill

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/lexfeed/ai"
	"github.com/poiesic/lexfeed/core"
	"github.com/poiesic/lexfeed/storage"
)

// Config holds configuration for a backfill run.
type Config struct {
	// BatchSize is the number of records fetched per missing-vector query
	BatchSize int

	// MaxRetries is the maximum number of retry attempts per embedding call
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// MaxInputChars caps item text sent to the embedder
	MaxInputChars int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:     100,
		MaxRetries:    3,
		RetryDelay:    1 * time.Second,
		MaxInputChars: 8000,
	}
}

// Result summarizes one backfill run.
type Result struct {
	ItemsRepaired  int
	ChunksRepaired int
	Failures       int
	Elapsed        time.Duration
}

// Backfiller re-embeds knowledge items and chunks whose vectors are missing.
type Backfiller struct {
	repo     storage.KnowledgeRepository
	embedder ai.Embedder
	config   *Config
	progress io.Writer
	logger   *slog.Logger
}

// NewBackfiller creates a backfiller. progress may be nil to suppress
// progress output.
func NewBackfiller(repo storage.KnowledgeRepository, embedder ai.Embedder, config *Config, progress io.Writer) *Backfiller {
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}
	return &Backfiller{
		repo:     repo,
		embedder: embedder,
		config:   config,
		progress: progress,
		logger:   slog.Default().With("component", "backfill"),
	}
}

// Run repairs all records missing vectors and returns a summary.
// Individual embedding failures are counted and skipped; the run only
// errors on storage failures or context cancellation.
func (b *Backfiller) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{}

	if err := b.repairItems(ctx, result); err != nil {
		return result, err
	}
	if err := b.repairChunks(ctx, result); err != nil {
		return result, err
	}

	result.Elapsed = time.Since(start)
	fmt.Fprintf(b.progress, "Backfill complete: %d items, %d chunks repaired, %d failures in %v\n",
		result.ItemsRepaired, result.ChunksRepaired, result.Failures, result.Elapsed.Round(time.Second))
	return result, nil
}

func (b *Backfiller) repairItems(ctx context.Context, result *Result) error {
	for {
		items, err := b.repo.ItemsMissingVectors(ctx, b.config.BatchSize)
		if err != nil {
			return fmt.Errorf("failed to query items missing vectors: %w", err)
		}
		if len(items) == 0 {
			return nil
		}

		repaired := make([]*core.KnowledgeItem, 0, len(items))
		for _, item := range items {
			vector, err := b.embedWithRetry(ctx, truncate(item.Content, b.config.MaxInputChars))
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				b.logger.Warn("item embedding failed, skipping", "id", item.Id, "err", err)
				result.Failures++
				continue
			}
			item.Vector = NormalizeVector(vector)
			repaired = append(repaired, item)
		}

		if len(repaired) > 0 {
			if _, err := b.repo.UpdateKnowledgeItems(ctx, repaired...); err != nil {
				return fmt.Errorf("failed to update items: %w", err)
			}
			result.ItemsRepaired += len(repaired)
		}

		// Every remaining candidate failed; stop instead of spinning on
		// the same batch.
		if len(repaired) == 0 {
			return nil
		}
	}
}

func (b *Backfiller) repairChunks(ctx context.Context, result *Result) error {
	for {
		chunks, err := b.repo.ChunksMissingVectors(ctx, b.config.BatchSize)
		if err != nil {
			return fmt.Errorf("failed to query chunks missing vectors: %w", err)
		}
		if len(chunks) == 0 {
			return nil
		}

		texts := make([]string, len(chunks))
		for i, chunk := range chunks {
			texts[i] = chunk.Text
		}

		var vectors [][]float32
		err = RetryWithBackoff(ctx, func() error {
			var embedErr error
			vectors, embedErr = b.embedder.EmbedTexts(ctx, texts)
			return embedErr
		}, b.config.MaxRetries, b.config.RetryDelay)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			b.logger.Warn("chunk batch embedding failed, stopping chunk repair", "count", len(chunks), "err", err)
			result.Failures += len(chunks)
			return nil
		}

		repaired := make([]*core.KnowledgeChunk, 0, len(chunks))
		for i, chunk := range chunks {
			if i >= len(vectors) || len(vectors[i]) == 0 {
				result.Failures++
				continue
			}
			chunk.Vector = NormalizeVector(vectors[i])
			repaired = append(repaired, chunk)
		}

		if len(repaired) > 0 {
			if err := b.repo.UpdateChunks(ctx, repaired...); err != nil {
				return fmt.Errorf("failed to update chunks: %w", err)
			}
			result.ChunksRepaired += len(repaired)
		}
		if len(repaired) == 0 {
			return nil
		}
	}
}

func (b *Backfiller) embedWithRetry(ctx context.Context, text string) ([]float32, error) {
	var vector []float32
	err := RetryWithBackoff(ctx, func() error {
		var embedErr error
		vector, embedErr = b.embedder.EmbedText(ctx, text)
		return embedErr
	}, b.config.MaxRetries, b.config.RetryDelay)
	return vector, err
}

func truncate(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
