package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for persisted entities.
// It is generated from database sequences or content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text using BLAKE2b hashing.
// Identical content always produces the identical ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// HashContent returns the BLAKE2b-256 fingerprint of extracted document text
// as a lowercase hex string. The hash uniquely identifies a content revision:
// two fetches of the same URL with equal hashes are the same revision.
func HashContent(text string) string {
	h, _ := blake2b.New(32, nil)
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// DocumentStatus tracks a regulatory document through its lifecycle.
type DocumentStatus int

const (
	// StatusPending marks a document that has been discovered but not processed.
	StatusPending DocumentStatus = iota + 1
	// StatusProcessing marks a document currently being integrated.
	StatusProcessing
	// StatusProcessed marks a document whose integration finished.
	StatusProcessed
	// StatusActive marks the single current version for a URL lineage.
	StatusActive
	// StatusSuperseded marks a prior version replaced by a newer one.
	StatusSuperseded
	// StatusArchived marks a superseded version removed by the retention sweep.
	StatusArchived
	// StatusFailed marks a document whose integration failed.
	StatusFailed
)

// String returns the lowercase name used in logs and status surfaces.
func (s DocumentStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusProcessing:
		return "processing"
	case StatusProcessed:
		return "processed"
	case StatusActive:
		return "active"
	case StatusSuperseded:
		return "superseded"
	case StatusArchived:
		return "archived"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ParserKind selects the feed parser for a source. The kind is resolved once
// when the source is registered, never re-derived per fetch.
type ParserKind int

const (
	// ParserRSS parses RSS 2.0 feeds. It is also the fallback for unknown kinds.
	ParserRSS ParserKind = iota + 1
	// ParserAtom parses Atom feeds.
	ParserAtom
	// ParserHTMLIndex parses HTML listing pages published without a feed.
	ParserHTMLIndex
)

// String returns the configuration name of the parser kind.
func (k ParserKind) String() string {
	switch k {
	case ParserRSS:
		return "rss"
	case ParserAtom:
		return "atom"
	case ParserHTMLIndex:
		return "html-index"
	default:
		return "unknown"
	}
}

// HealthState classifies a feed source for the health surface.
type HealthState string

const (
	HealthHealthy   HealthState = "healthy"
	HealthUnhealthy HealthState = "unhealthy"
	HealthError     HealthState = "error"
)

// FeedSource describes one monitored feed from a regulatory authority.
// Sources come from configuration; health fields are runtime state mutated
// by the collector between cycles.
type FeedSource struct {
	ID            string
	URL           string
	Authority     string
	FeedType      string
	Parser        ParserKind
	Enabled       bool
	CheckInterval time.Duration

	Health            HealthState
	ConsecutiveErrors int
	TotalErrors       int
	LastChecked       time.Time
	LastSuccess       time.Time
	LastError         string
}

// FeedItem is one normalized entry parsed out of a feed. Items are transient:
// they are discarded after the dedup check, only surviving items become
// regulatory documents.
type FeedItem struct {
	Title          string
	URL            string
	Description    string
	PublishedAt    time.Time
	Source         string // FeedSource.ID
	SourceType     string
	DocumentNumber string // optional, extracted via authority pattern
	GUID           string
}

// FeedHealth is the observability snapshot for one source.
type FeedHealth struct {
	Status            HealthState
	LastChecked       time.Time
	LastSuccess       time.Time
	ResponseTime      time.Duration
	ItemsFound        int
	ConsecutiveErrors int
	TotalErrors       int
	LastError         string
}

// RegulatoryDocument is the persisted record for one revision of a published
// regulatory document. Exactly one document per URL lineage is Active at any
// time; version numbers increase monotonically within a lineage.
type RegulatoryDocument struct {
	Id                ID
	Source            string
	SourceType        string
	Title             string
	URL               string
	PublishedAt       time.Time
	Content           string
	ContentHash       string
	DocumentNumber    string
	Authority         string
	Metadata          map[string]string
	Version           int
	PreviousVersionId ID // back-reference only, no ownership
	Status            DocumentStatus
	ProcessedAt       time.Time
	KnowledgeItemId   ID
	Topics            []string
	ImportanceScore   float64
	InsertedAt        time.Time
	UpdatedAt         time.Time
	ArchivedAt        time.Time
	ArchiveReason     string
}

// Micros is an elapsed time persisted as integer microseconds. Log entries
// use it instead of time.Duration so the serializer can treat the field as a
// plain integer.
type Micros int64

// DurationMicros converts a duration to its persisted form.
func DurationMicros(d time.Duration) Micros {
	return Micros(d.Microseconds())
}

// Duration converts back to a time.Duration.
func (m Micros) Duration() time.Duration {
	return time.Duration(m) * time.Microsecond
}

// ProcessingLogEntry is one append-only audit record for a pipeline operation.
type ProcessingLogEntry struct {
	Id          ID
	DocumentURL string
	Operation   string
	Status      string
	Duration    Micros
	ErrorMsg    string
	TriggeredBy string
	FeedURL     string
	Timestamp   time.Time
}

// KnowledgeItem is the searchable knowledge entry produced from a document.
type KnowledgeItem struct {
	Id             ID
	Title          string
	Content        string
	Category       string
	SourceURL      string
	ContentHash    string
	Metadata       map[string]string
	RelevanceScore float64
	Language       string
	Status         string
	Epoch          int64 // generation stamp of the ingestion pass that produced the item
	Vector         []float32
	InsertedAt     time.Time
	UpdatedAt      time.Time
}

// KnowledgeChunk is one bounded-length slice of a knowledge item's content,
// the unit of semantic search indexing. Chunks are ordered by Index.
type KnowledgeChunk struct {
	Id           ID
	ItemId       ID
	Text         string
	Index        int
	TokenCount   int
	QualityScore float64
	Junk         bool
	OCRUsed      bool
	StartOffset  int
	EndOffset    int
	Vector       []float32
}

// SearchResult is a knowledge chunk match with its relevance score.
type SearchResult struct {
	Chunk *KnowledgeChunk
	Score float32
}
