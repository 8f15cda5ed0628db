package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/lexfeed/core"
	"github.com/poiesic/lexfeed/storage"
)

// LogRepository implements storage.ProcessingLogRepository for BadgerDB.
// The log is strictly append-only; entries are never updated or deleted.
type LogRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ProcessingLogRepository = (*LogRepository)(nil)

// NewLogRepository creates a new LogRepository.
func NewLogRepository(backend *Backend) (*LogRepository, error) {
	idSeq, err := backend.GetSequence(logIDSeq)
	if err != nil {
		return nil, err
	}

	return &LogRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *LogRepository) Close() error {
	return r.idSeq.Release()
}

// Append adds entries to the log.
func (r *LogRepository) Append(ctx context.Context, entries ...*core.ProcessingLogEntry) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			entry.Id = core.ID(nextID)

			if entry.Timestamp.IsZero() {
				entry.Timestamp = time.Now().UTC()
			}

			key := makeLogKey(entry.Timestamp, entry.Id)
			if err := tx.Set(key, storage.MarshalLogEntry(entry)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetRecent retrieves the N most recent entries, newest first.
func (r *LogRepository) GetRecent(ctx context.Context, limit int) ([]*core.ProcessingLogEntry, error) {
	var results []*core.ProcessingLogEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(logPrefix + ":")
		// Seek past the last possible log key.
		startKey := makePartialLogKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))

		for iter.Seek(startKey); iter.Valid() && len(results) < limit; iter.Next() {
			key := iter.Item().Key()
			if !hasPrefix(key, prefix) {
				break
			}

			var entry *core.ProcessingLogEntry
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalLogEntry(val)
				return err
			}); err != nil {
				return err
			}
			if entry != nil {
				results = append(results, entry)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetSince retrieves entries with Timestamp >= since, oldest first.
func (r *LogRepository) GetSince(ctx context.Context, since time.Time) ([]*core.ProcessingLogEntry, error) {
	var results []*core.ProcessingLogEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := []byte(logPrefix + ":")
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(makePartialLogKey(since)); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if !hasPrefix(key, prefix) {
				break
			}

			var entry *core.ProcessingLogEntry
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalLogEntry(val)
				return err
			}); err != nil {
				return err
			}
			if entry != nil {
				results = append(results, entry)
			}
		}
		return nil
	}, false)

	return results, err
}
