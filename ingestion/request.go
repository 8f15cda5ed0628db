package ingestion

import (
	"strings"
	"time"
)

// Request carries one fetched document into the integrator. It replaces the
// loose payload maps that used to travel between pipeline stages; required
// and optional fields are explicit.
type Request struct {
	// Required.
	URL    string
	Title  string
	Text   string // extracted plain text
	Source string // FeedSource.ID

	// Optional.
	SourceType     string
	Authority      string
	DocumentNumber string
	PublishedAt    time.Time // zero value falls back to now
	Metadata       map[string]string
	TriggeredBy    string // "scheduler", "manual", ... for the processing log
	FeedURL        string
}

// Validate checks the required fields.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return ErrMissingURL
	}
	if strings.TrimSpace(r.Text) == "" {
		return ErrMissingText
	}
	if strings.TrimSpace(r.Source) == "" {
		return ErrMissingSource
	}
	return nil
}

// Outcome classifies what the integrator did with a request.
type Outcome int

const (
	// OutcomeCreated means a new document lineage was started (version 1).
	OutcomeCreated Outcome = iota + 1
	// OutcomeUpdated means the prior version was superseded by a new one.
	OutcomeUpdated
	// OutcomeSkipped means the content hash matched the active record.
	OutcomeSkipped
)

// String returns the log name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}
