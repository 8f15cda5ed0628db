package collector

import "time"

// SourceResult is one feed's outcome within a cycle. A fetch failure is not
// a source failure: the source still "succeeds" with zero new documents and
// a recorded error, per-item and per-feed problems are counted, not thrown.
// Success is false only when the source could not be processed at all
// (unknown source in a scoped trigger).
type SourceResult struct {
	Source         string
	Success        bool
	ItemsTotal     int
	NewDocuments   int
	UpdatedDocs    int
	Skipped        int
	Errors         int
	ProcessingTime time.Duration
	Error          string
}

// CycleResult is the immutable outcome of one collection cycle. A fresh
// value is built per invocation; overlapping cycles can never leak state
// into each other.
type CycleResult struct {
	ID          string // uuid
	TriggeredBy string
	StartedAt   time.Time
	Duration    time.Duration

	FeedsProcessed int
	ItemsTotal     int
	NewDocuments   int
	UpdatedDocs    int
	Errors         int

	Sources []SourceResult
}

// Stats24h aggregates the processing log over the last 24 hours for the
// status surface.
type Stats24h struct {
	Operations int
	Created    int
	Updated    int
	Skipped    int
	Errors     int
}
