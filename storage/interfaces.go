package storage

import (
	"context"
	"time"

	"github.com/poiesic/lexfeed/core"
)

// Repository provides operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// Close closes the repository and releases resources.
	Close() error
}

// Integration bundles everything one document ingestion produces. The whole
// unit is persisted in a single transaction: the document, its knowledge
// item, the ordered chunks, and (for updates) the supersede marker on the
// prior version. Any failure rolls back the whole unit.
type Integration struct {
	Document   *core.RegulatoryDocument
	Item       *core.KnowledgeItem
	Chunks     []*core.KnowledgeChunk
	Supersedes core.ID // zero for first versions
}

// DocumentRepository provides operations for regulatory documents.
type DocumentRepository interface {
	Repository

	// SaveIntegration atomically persists a document together with its
	// knowledge item and chunks. When in.Supersedes is non-zero the prior
	// record is marked superseded in the same transaction and the URL and
	// hash indexes are moved to the new version. Returns the document with
	// generated ID and timestamps populated.
	SaveIntegration(ctx context.Context, in *Integration) (*core.RegulatoryDocument, error)

	// UpdateDocuments updates existing documents in place. Updates the
	// UpdatedAt timestamp automatically. Returns ErrNotFound if any document
	// does not exist.
	UpdateDocuments(ctx context.Context, docs ...*core.RegulatoryDocument) ([]*core.RegulatoryDocument, error)

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.RegulatoryDocument, error)

	// GetActiveByURL retrieves the single active document for a URL lineage.
	// Returns ErrNotFound when the URL has never been ingested.
	GetActiveByURL(ctx context.Context, url string) (*core.RegulatoryDocument, error)

	// GetActiveByHash retrieves the active document carrying a content hash.
	// Used as the fallback lookup when mirrored content moves URL.
	// Returns ErrNotFound when no active document carries the hash.
	GetActiveByHash(ctx context.Context, hash string) (*core.RegulatoryDocument, error)

	// URLKnown reports whether any document (active or not) was ever
	// ingested under the URL. This is the collector's fast-path prefilter;
	// the integrator's hash check stays authoritative.
	URLKnown(ctx context.Context, url string) (bool, error)

	// GetDocumentsByDateRange retrieves documents with
	// start <= PublishedAt < end, ordered by published date.
	GetDocumentsByDateRange(ctx context.Context, start, end time.Time) ([]*core.RegulatoryDocument, error)

	// GetSupersededBefore retrieves up to limit superseded documents whose
	// UpdatedAt is older than cutoff. Used by the retention sweep.
	GetSupersededBefore(ctx context.Context, cutoff time.Time, limit int) ([]*core.RegulatoryDocument, error)
}

// KnowledgeRepository provides operations for knowledge items and chunks.
type KnowledgeRepository interface {
	Repository

	// GetKnowledgeItem retrieves a knowledge item by ID.
	// Returns ErrNotFound if the item doesn't exist.
	GetKnowledgeItem(ctx context.Context, id core.ID) (*core.KnowledgeItem, error)

	// GetChunks retrieves the chunks of an item ordered by chunk index.
	GetChunks(ctx context.Context, itemID core.ID) ([]*core.KnowledgeChunk, error)

	// UpdateKnowledgeItems updates existing items.
	// Returns ErrNotFound if any item doesn't exist.
	UpdateKnowledgeItems(ctx context.Context, items ...*core.KnowledgeItem) ([]*core.KnowledgeItem, error)

	// UpdateChunks updates existing chunks in place.
	UpdateChunks(ctx context.Context, chunks ...*core.KnowledgeChunk) error

	// ItemsMissingVectors retrieves up to limit items without an embedding.
	// The embedding backfill repairs these periodically.
	ItemsMissingVectors(ctx context.Context, limit int) ([]*core.KnowledgeItem, error)

	// ChunksMissingVectors retrieves up to limit chunks without an embedding,
	// skipping junk chunks.
	ChunksMissingVectors(ctx context.Context, limit int) ([]*core.KnowledgeChunk, error)

	// FindSimilar finds chunks similar to the given vector. Returns chunks
	// with similarity >= minSimilarity, up to limit results, ordered by
	// similarity score (highest first).
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error)
}

// ProcessingLogRepository provides the append-only pipeline audit log.
type ProcessingLogRepository interface {
	Repository

	// Append adds entries to the log. Entries are never updated or deleted.
	Append(ctx context.Context, entries ...*core.ProcessingLogEntry) error

	// GetRecent retrieves the N most recent entries, newest first.
	GetRecent(ctx context.Context, limit int) ([]*core.ProcessingLogEntry, error)

	// GetSince retrieves entries with Timestamp >= since, oldest first.
	// Used for the 24h aggregate statistics on the status surface.
	GetSince(ctx context.Context, since time.Time) ([]*core.ProcessingLogEntry, error)
}
