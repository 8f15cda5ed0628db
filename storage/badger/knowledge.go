package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/lexfeed/core"
	"github.com/poiesic/lexfeed/storage"
)

// KnowledgeRepository implements storage.KnowledgeRepository for BadgerDB.
type KnowledgeRepository struct {
	backend *Backend
}

var _ storage.KnowledgeRepository = (*KnowledgeRepository)(nil)

// NewKnowledgeRepository creates a new KnowledgeRepository.
func NewKnowledgeRepository(backend *Backend) *KnowledgeRepository {
	return &KnowledgeRepository{backend: backend}
}

// Close is a no-op; the repository holds no sequence.
func (r *KnowledgeRepository) Close() error {
	return nil
}

// GetKnowledgeItem retrieves a knowledge item by ID.
func (r *KnowledgeRepository) GetKnowledgeItem(ctx context.Context, id core.ID) (*core.KnowledgeItem, error) {
	var result *core.KnowledgeItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readKnowledgeItem(tx, makeKnowledgeItemKey(id))
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

// GetChunks retrieves the chunks of an item ordered by chunk index.
func (r *KnowledgeRepository) GetChunks(ctx context.Context, itemID core.ID) ([]*core.KnowledgeChunk, error) {
	var results []*core.KnowledgeChunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialChunkKey(itemID)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if !hasPrefix(key, startKey) {
				break
			}

			var chunk *core.KnowledgeChunk
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			}); err != nil {
				return err
			}
			if chunk != nil {
				results = append(results, chunk)
			}
		}
		return nil
	}, false)
	return results, err
}

// UpdateKnowledgeItems updates existing items.
func (r *KnowledgeRepository) UpdateKnowledgeItems(ctx context.Context, items ...*core.KnowledgeItem) ([]*core.KnowledgeItem, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, item := range items {
			key := makeKnowledgeItemKey(item.Id)
			old, err := readKnowledgeItem(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			item.UpdatedAt = time.Now().UTC()
			if err := tx.Set(key, storage.MarshalKnowledgeItem(item)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	return items, err
}

// UpdateChunks updates existing chunks in place.
func (r *KnowledgeRepository) UpdateChunks(ctx context.Context, chunks ...*core.KnowledgeChunk) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			key := makeChunkKey(chunk.ItemId, chunk.Index)
			if _, err := tx.Get(key); err != nil {
				if err == badger.ErrKeyNotFound {
					return storage.ErrNotFound
				}
				return err
			}
			if err := tx.Set(key, storage.MarshalChunk(chunk)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// ItemsMissingVectors retrieves up to limit items without an embedding.
func (r *KnowledgeRepository) ItemsMissingVectors(ctx context.Context, limit int) ([]*core.KnowledgeItem, error) {
	var results []*core.KnowledgeItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(knowledgeItemPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid() && len(results) < limit; iter.Next() {
			var item *core.KnowledgeItem
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				item, err = storage.UnmarshalKnowledgeItem(val)
				return err
			}); err != nil {
				return err
			}
			if item != nil && len(item.Vector) == 0 {
				results = append(results, item)
			}
		}
		return nil
	}, false)
	return results, err
}

// ChunksMissingVectors retrieves up to limit non-junk chunks without an
// embedding.
func (r *KnowledgeRepository) ChunksMissingVectors(ctx context.Context, limit int) ([]*core.KnowledgeChunk, error) {
	var results []*core.KnowledgeChunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(knowledgeChunkPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid() && len(results) < limit; iter.Next() {
			var chunk *core.KnowledgeChunk
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			}); err != nil {
				return err
			}
			if chunk != nil && !chunk.Junk && len(chunk.Vector) == 0 {
				results = append(results, chunk)
			}
		}
		return nil
	}, false)
	return results, err
}

// FindSimilar finds chunks similar to the given vector.
func (r *KnowledgeRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error) {
	var results []*core.SearchResult

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(knowledgeChunkPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.KnowledgeChunk
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			}); err != nil {
				return err
			}
			if chunk == nil || chunk.Junk || len(chunk.Vector) == 0 {
				continue
			}

			// Dot product equals cosine similarity for normalized vectors.
			similarity := dotProduct(vector, chunk.Vector)
			if similarity >= minSimilarity {
				results = append(results, &core.SearchResult{
					Chunk: chunk,
					Score: similarity,
				})
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.SearchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// readKnowledgeItem reads a knowledge item from the transaction.
func readKnowledgeItem(tx *badger.Txn, key []byte) (*core.KnowledgeItem, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var result *core.KnowledgeItem
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		result, unmarshalErr = storage.UnmarshalKnowledgeItem(val)
		return unmarshalErr
	})
	return result, err
}
