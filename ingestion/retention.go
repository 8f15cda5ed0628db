package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/lexfeed/core"
	"github.com/poiesic/lexfeed/storage"
)

// Archiver runs the retention sweep: superseded documents older than the
// configured age are marked archived. Archived records stay readable by ID;
// only their sweep-index entry is removed.
type Archiver struct {
	docs   storage.DocumentRepository
	log    storage.ProcessingLogRepository
	maxAge time.Duration
	batch  int
	logger *slog.Logger
}

// NewArchiver creates an Archiver. maxAge is how long a superseded version
// is kept before archiving; batch bounds one sweep's write volume.
func NewArchiver(docs storage.DocumentRepository, log storage.ProcessingLogRepository, maxAge time.Duration, batch int) *Archiver {
	if batch <= 0 {
		batch = 500
	}
	return &Archiver{
		docs:   docs,
		log:    log,
		maxAge: maxAge,
		batch:  batch,
		logger: slog.Default().With("component", "retention"),
	}
}

// Sweep archives all eligible documents and returns how many were archived.
func (a *Archiver) Sweep(ctx context.Context) (int, error) {
	cutoff := time.Now().UTC().Add(-a.maxAge)
	archived := 0

	for {
		candidates, err := a.docs.GetSupersededBefore(ctx, cutoff, a.batch)
		if err != nil {
			return archived, fmt.Errorf("retention query failed: %w", err)
		}
		if len(candidates) == 0 {
			break
		}

		now := time.Now().UTC()
		for _, doc := range candidates {
			doc.Status = core.StatusArchived
			doc.ArchivedAt = now
			doc.ArchiveReason = "retention"
		}

		if _, err := a.docs.UpdateDocuments(ctx, candidates...); err != nil {
			return archived, fmt.Errorf("retention update failed: %w", err)
		}
		archived += len(candidates)

		if len(candidates) < a.batch {
			break
		}
	}

	if archived > 0 {
		a.logger.Info("retention sweep archived documents", "count", archived, "cutoff", cutoff)
		entry := &core.ProcessingLogEntry{
			Operation:   "retention",
			Status:      "success",
			TriggeredBy: "scheduler",
			Timestamp:   time.Now().UTC(),
		}
		if err := a.log.Append(ctx, entry); err != nil {
			a.logger.Warn("retention log append failed", "err", err)
		}
	}
	return archived, nil
}
