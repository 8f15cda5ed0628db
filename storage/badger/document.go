package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/lexfeed/core"
	"github.com/poiesic/lexfeed/storage"
)

// DocumentRepository implements storage.DocumentRepository for BadgerDB.
type DocumentRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(backend *Backend) (*DocumentRepository, error) {
	idSeq, err := backend.GetSequence(docIDSeq)
	if err != nil {
		return nil, err
	}

	return &DocumentRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *DocumentRepository) Close() error {
	return r.idSeq.Release()
}

// SaveIntegration atomically persists a document, its knowledge item and
// chunks, and the supersede marker on the prior version. Either the whole
// unit commits or nothing does.
func (r *DocumentRepository) SaveIntegration(ctx context.Context, in *storage.Integration) (*core.RegulatoryDocument, error) {
	doc := in.Document

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		nextID, err := r.idSeq.Next()
		if err != nil {
			return err
		}
		// BadgerDB sequences can return 0 on first call, so we skip it
		if nextID == 0 {
			nextID, err = r.idSeq.Next()
			if err != nil {
				return err
			}
		}
		doc.Id = core.ID(nextID)

		now := time.Now().UTC()
		doc.InsertedAt = now
		doc.UpdatedAt = now

		if in.Supersedes != 0 {
			if err := r.supersede(tx, in.Supersedes, doc.Id, now); err != nil {
				return err
			}
			doc.PreviousVersionId = in.Supersedes
		}

		// Primary record
		if err := tx.Set(makeDocumentKey(doc.Id), storage.MarshalDocument(doc)); err != nil {
			return err
		}

		// URL index always points at the current version of the lineage.
		idValue := storage.MarshalID(doc.Id)
		if err := tx.Set(makeURLIndexKey(doc.URL), idValue); err != nil {
			return err
		}
		if err := tx.Set(makeHashIndexKey(doc.ContentHash), idValue); err != nil {
			return err
		}
		if err := tx.Set(makeDocDateKey(doc.PublishedAt, doc.Id), idValue); err != nil {
			return err
		}

		if in.Item != nil {
			in.Item.InsertedAt = now
			in.Item.UpdatedAt = now
			doc.KnowledgeItemId = in.Item.Id
			key := makeKnowledgeItemKey(in.Item.Id)
			if err := tx.Set(key, storage.MarshalKnowledgeItem(in.Item)); err != nil {
				return err
			}
			// Rewrite the document so the item back-reference persists.
			if err := tx.Set(makeDocumentKey(doc.Id), storage.MarshalDocument(doc)); err != nil {
				return err
			}
		}

		for _, chunk := range in.Chunks {
			key := makeChunkKey(chunk.ItemId, chunk.Index)
			if err := tx.Set(key, storage.MarshalChunk(chunk)); err != nil {
				return err
			}
		}

		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return doc, nil
}

// supersede marks the prior active version as superseded and removes its
// hash index entry inside the caller's transaction.
func (r *DocumentRepository) supersede(tx *badger.Txn, priorID, newID core.ID, now time.Time) error {
	prior, err := r.readDocument(tx, makeDocumentKey(priorID))
	if err != nil {
		return err
	}
	if prior == nil {
		return storage.ErrNotFound
	}
	if prior.Status != core.StatusActive {
		return storage.ErrVersionConflict
	}

	prior.Status = core.StatusSuperseded
	prior.UpdatedAt = now
	if err := tx.Set(makeDocumentKey(prior.Id), storage.MarshalDocument(prior)); err != nil {
		return err
	}
	if err := tx.Delete(makeHashIndexKey(prior.ContentHash)); err != nil {
		return err
	}
	return tx.Set(makeSupersededKey(now, prior.Id), storage.MarshalID(prior.Id))
}

// UpdateDocuments updates existing documents in place.
func (r *DocumentRepository) UpdateDocuments(ctx context.Context, docs ...*core.RegulatoryDocument) ([]*core.RegulatoryDocument, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, doc := range docs {
			key := makeDocumentKey(doc.Id)

			old, err := r.readDocument(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			doc.UpdatedAt = time.Now().UTC()

			// Archiving removes the record from the retention sweep index.
			if old.Status == core.StatusSuperseded && doc.Status == core.StatusArchived {
				if err := tx.Delete(makeSupersededKey(old.UpdatedAt, old.Id)); err != nil {
					return err
				}
			}

			if err := tx.Set(key, storage.MarshalDocument(doc)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return docs, err
}

// GetDocument retrieves a single document by ID.
func (r *DocumentRepository) GetDocument(ctx context.Context, id core.ID) (*core.RegulatoryDocument, error) {
	var result *core.RegulatoryDocument
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readDocument(tx, makeDocumentKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetActiveByURL retrieves the active document for a URL lineage.
func (r *DocumentRepository) GetActiveByURL(ctx context.Context, url string) (*core.RegulatoryDocument, error) {
	return r.getByIndex(makeURLIndexKey(url))
}

// GetActiveByHash retrieves the active document carrying a content hash.
func (r *DocumentRepository) GetActiveByHash(ctx context.Context, hash string) (*core.RegulatoryDocument, error) {
	return r.getByIndex(makeHashIndexKey(hash))
}

// URLKnown reports whether the URL lineage exists in the store.
func (r *DocumentRepository) URLKnown(ctx context.Context, url string) (bool, error) {
	known := false
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeURLIndexKey(url))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		known = true
		return nil
	}, false)
	return known, err
}

// GetDocumentsByDateRange retrieves documents with start <= PublishedAt < end.
func (r *DocumentRepository) GetDocumentsByDateRange(ctx context.Context, start, end time.Time) ([]*core.RegulatoryDocument, error) {
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	var results []*core.RegulatoryDocument
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialDocDateKey(start)
		endKey := makePartialDocDateKey(end)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if !hasPrefix(key, []byte(docDateIndexPrefix+":")) {
				break
			}
			if slices.Compare(key, endKey) > 0 {
				break
			}

			var docID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				docID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			doc, err := r.readDocument(tx, makeDocumentKey(docID))
			if err != nil {
				return err
			}
			if doc != nil {
				results = append(results, doc)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetSupersededBefore retrieves superseded documents older than cutoff.
func (r *DocumentRepository) GetSupersededBefore(ctx context.Context, cutoff time.Time, limit int) ([]*core.RegulatoryDocument, error) {
	var results []*core.RegulatoryDocument
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := []byte(docSupersededPrefix + ":")
		endKey := makePartialSupersededKey(cutoff)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(prefix); iter.Valid() && len(results) < limit; iter.Next() {
			key := iter.Item().Key()
			if !hasPrefix(key, prefix) {
				break
			}
			if slices.Compare(key, endKey) > 0 {
				break
			}

			var docID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				docID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			doc, err := r.readDocument(tx, makeDocumentKey(docID))
			if err != nil {
				return err
			}
			if doc != nil && doc.Status == core.StatusSuperseded {
				results = append(results, doc)
			}
		}
		return nil
	}, false)

	return results, err
}

// Helper methods

// getByIndex resolves a single-entry index key to its document.
func (r *DocumentRepository) getByIndex(indexKey []byte) (*core.RegulatoryDocument, error) {
	var result *core.RegulatoryDocument
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(indexKey)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var docID core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			docID, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		result, err = r.readDocument(tx, makeDocumentKey(docID))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// readDocument reads a document from the transaction.
func (r *DocumentRepository) readDocument(tx *badger.Txn, key []byte) (*core.RegulatoryDocument, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var doc *core.RegulatoryDocument
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		doc, unmarshalErr = storage.UnmarshalDocument(val)
		return unmarshalErr
	})
	return doc, err
}
