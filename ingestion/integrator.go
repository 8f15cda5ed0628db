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


// Package ingestion converts fetched documents into persisted, searchable
// knowledge entries.
//
// The integrator owns the create/supersede/no-op decision. Dedup is
// hash-authoritative: the URL lookup is only the first probe, and a hash
// lookup covers mirrored content whose URL changed. Identical hash against
// the active record is a normal no-op, never an error.
//
// Persistence is all-or-nothing per document. Embedding failures degrade
// the write (vectors stored absent, repaired by the backfill job) but never
// abort it; cache invalidation failures are logged and swallowed.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/poiesic/lexfeed/ai"
	"github.com/poiesic/lexfeed/backfill"
	"github.com/poiesic/lexfeed/cache"
	"github.com/poiesic/lexfeed/chunk"
	"github.com/poiesic/lexfeed/core"
	"github.com/poiesic/lexfeed/storage"
)

// Result reports what one integration did.
type Result struct {
	Outcome           Outcome
	Document          *core.RegulatoryDocument
	ChunkCount        int
	EmbeddingDegraded bool
	CacheEvictions    int
	Duration          time.Duration
}

// Integrator persists documents with versioning, chunking, and embeddings.
type Integrator struct {
	docs     storage.DocumentRepository
	log      storage.ProcessingLogRepository
	chunker  chunk.Chunker
	embedder ai.Embedder
	inval    cache.Invalidator

	maxEmbedChars int
	logger        *slog.Logger
}

// IntegratorOption configures an Integrator.
type IntegratorOption func(*Integrator)

// WithMaxEmbedChars caps the full-document text sent to the embedder.
// Default 8000.
func WithMaxEmbedChars(n int) IntegratorOption {
	return func(i *Integrator) {
		i.maxEmbedChars = n
	}
}

// WithInvalidator sets the cache invalidator. Defaults to a no-op.
func WithInvalidator(inv cache.Invalidator) IntegratorOption {
	return func(i *Integrator) {
		i.inval = inv
	}
}

// WithChunker replaces the default splitter.
func WithChunker(c chunk.Chunker) IntegratorOption {
	return func(i *Integrator) {
		i.chunker = c
	}
}

// NewIntegrator creates an Integrator.
func NewIntegrator(docs storage.DocumentRepository, log storage.ProcessingLogRepository, embedder ai.Embedder, opts ...IntegratorOption) *Integrator {
	i := &Integrator{
		docs:          docs,
		log:           log,
		chunker:       chunk.NewSplitter(),
		embedder:      embedder,
		inval:         cache.NewNoopInvalidator(),
		maxEmbedChars: 8000,
		logger:        slog.Default().With("component", "integrator"),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Integrate processes one document end to end. The returned error is only
// non-nil for whole-unit failures (validation, storage); those leave no
// partial write behind.
func (ig *Integrator) Integrate(ctx context.Context, req *Request) (*Result, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash := core.HashContent(req.Text)

	prior, err := ig.lookupActive(ctx, req.URL, hash)
	if err != nil {
		return nil, fmt.Errorf("dedup lookup failed: %w", err)
	}

	// Hash-equality no-op law: identical content never creates a version.
	if prior != nil && prior.ContentHash == hash {
		ig.logger.Debug("content unchanged, skipping", "url", req.URL, "version", prior.Version)
		result := &Result{Outcome: OutcomeSkipped, Document: prior, Duration: time.Since(start)}
		ig.appendLog(ctx, req, result, nil)
		return result, nil
	}

	doc := ig.buildDocument(req, hash, prior)
	item, chunks, degraded := ig.buildKnowledge(ctx, doc)

	integration := &storage.Integration{
		Document: doc,
		Item:     item,
		Chunks:   chunks,
	}
	outcome := OutcomeCreated
	if prior != nil {
		integration.Supersedes = prior.Id
		outcome = OutcomeUpdated
	}

	saved, err := ig.docs.SaveIntegration(ctx, integration)
	if err != nil {
		result := &Result{Outcome: outcome, Duration: time.Since(start)}
		ig.appendLog(ctx, req, result, err)
		return nil, fmt.Errorf("integration persist failed: %w", err)
	}

	result := &Result{
		Outcome:           outcome,
		Document:          saved,
		ChunkCount:        len(chunks),
		EmbeddingDegraded: degraded,
		Duration:          time.Since(start),
	}

	// Best-effort: stale cached search results are tolerable, a lost
	// document is not.
	evicted, err := ig.inval.Invalidate(ctx, cache.PatternsFor(saved.Source, saved.Topics)...)
	result.CacheEvictions = evicted
	if err != nil {
		ig.logger.Warn("cache invalidation failed", "url", saved.URL, "err", err)
	}

	ig.appendLog(ctx, req, result, nil)
	ig.logger.Info("document integrated",
		"url", saved.URL, "outcome", outcome.String(), "version", saved.Version,
		"chunks", len(chunks), "degraded", degraded)
	return result, nil
}

// lookupActive probes by URL first, then by hash to catch mirrored content
// under a new URL. Returns nil without error when neither matches.
func (ig *Integrator) lookupActive(ctx context.Context, url, hash string) (*core.RegulatoryDocument, error) {
	doc, err := ig.docs.GetActiveByURL(ctx, url)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	doc, err = ig.docs.GetActiveByHash(ctx, hash)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	return nil, nil
}

func (ig *Integrator) buildDocument(req *Request, hash string, prior *core.RegulatoryDocument) *core.RegulatoryDocument {
	now := time.Now().UTC()

	publishedAt := req.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = now
	}

	doc := &core.RegulatoryDocument{
		Source:          req.Source,
		SourceType:      req.SourceType,
		Title:           req.Title,
		URL:             req.URL,
		PublishedAt:     publishedAt,
		Content:         req.Text,
		ContentHash:     hash,
		DocumentNumber:  req.DocumentNumber,
		Authority:       req.Authority,
		Version:         1,
		Status:          core.StatusActive,
		ProcessedAt:     now,
		Topics:          DeriveTopics(req.Title, req.Text),
		ImportanceScore: ScoreImportance(req.Title, req.Text, req.DocumentNumber),
	}

	metadata := make(map[string]string)
	if prior != nil {
		doc.Version = prior.Version + 1
		doc.PreviousVersionId = prior.Id
		if doc.Title == "" {
			doc.Title = prior.Title
		}
		if doc.DocumentNumber == "" {
			doc.DocumentNumber = prior.DocumentNumber
		}
		if doc.Authority == "" {
			doc.Authority = prior.Authority
		}
		for k, v := range prior.Metadata {
			metadata[k] = v
		}
	}
	for k, v := range req.Metadata {
		metadata[k] = v
	}
	metadata["version"] = strconv.Itoa(doc.Version)
	if prior != nil {
		metadata["previous_version_id"] = strconv.FormatUint(uint64(prior.Id), 10)
	}
	doc.Metadata = metadata

	return doc
}

// buildKnowledge produces the knowledge item and chunks, embedding what it
// can. Embedding failures leave vectors nil and flip the degraded flag.
func (ig *Integrator) buildKnowledge(ctx context.Context, doc *core.RegulatoryDocument) (*core.KnowledgeItem, []*core.KnowledgeChunk, bool) {
	degraded := false

	item := &core.KnowledgeItem{
		Id:          core.IDFromContent(doc.ContentHash + doc.URL),
		Title:       doc.Title,
		Content:     doc.Content,
		Category:    firstOr(doc.Topics, "general"),
		SourceURL:   doc.URL,
		ContentHash: doc.ContentHash,
		Metadata:    doc.Metadata,
		Language:    "sv",
		Status:      "active",
		Epoch:       time.Now().Unix(),
	}

	vector, err := ig.embedder.EmbedText(ctx, truncateRunes(doc.Content, ig.maxEmbedChars))
	if err != nil {
		ig.logger.Warn("document embedding failed, storing without vector", "url", doc.URL, "err", err)
		degraded = true
	} else {
		// Stored vectors are unit length so FindSimilar can use dot product.
		item.Vector = backfill.NormalizeVector(vector)
	}

	chunks := ig.chunker.Split(doc.Content, doc.Title)
	for idx, c := range chunks {
		c.Id = core.IDFromContent(doc.ContentHash + doc.URL + strconv.Itoa(idx))
		c.ItemId = item.Id
	}

	embeddable := make([]*core.KnowledgeChunk, 0, len(chunks))
	texts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if c.Junk {
			continue
		}
		embeddable = append(embeddable, c)
		texts = append(texts, c.Text)
	}
	if len(texts) > 0 {
		vectors, err := ig.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			ig.logger.Warn("chunk embedding failed, storing without vectors",
				"url", doc.URL, "chunks", len(texts), "err", err)
			degraded = true
		} else {
			for i, c := range embeddable {
				if i < len(vectors) && len(vectors[i]) > 0 {
					c.Vector = backfill.NormalizeVector(vectors[i])
				} else {
					degraded = true
				}
			}
		}
	}

	return item, chunks, degraded
}

func (ig *Integrator) appendLog(ctx context.Context, req *Request, result *Result, failure error) {
	entry := &core.ProcessingLogEntry{
		DocumentURL: req.URL,
		Operation:   "integrate",
		Status:      result.Outcome.String(),
		Duration:    core.DurationMicros(result.Duration),
		TriggeredBy: req.TriggeredBy,
		FeedURL:     req.FeedURL,
		Timestamp:   time.Now().UTC(),
	}
	if failure != nil {
		entry.Status = "error"
		entry.ErrorMsg = failure.Error()
	}
	if err := ig.log.Append(ctx, entry); err != nil {
		ig.logger.Warn("processing log append failed", "url", req.URL, "err", err)
	}
}

func firstOr(values []string, fallback string) string {
	if len(values) > 0 {
		return values[0]
	}
	return fallback
}

func truncateRunes(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
