package backfill

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/lexfeed/ai/mock"
	"github.com/poiesic/lexfeed/core"
	"github.com/poiesic/lexfeed/storage"
	badgerstore "github.com/poiesic/lexfeed/storage/badger"
)

func seedMissingVectors(t *testing.T, docRepo storage.DocumentRepository) {
	t.Helper()

	content := "regulation body awaiting embeddings"
	doc := &core.RegulatoryDocument{
		Source:      "test-feed",
		SourceType:  "rss",
		Title:       "Pending regulation",
		URL:         "https://example.gov/backfill/1",
		Content:     content,
		ContentHash: core.HashContent(content),
		Version:     1,
		Status:      core.StatusActive,
	}
	item := &core.KnowledgeItem{
		Id:          core.IDFromContent(doc.ContentHash + doc.URL),
		Title:       doc.Title,
		Content:     content,
		SourceURL:   doc.URL,
		ContentHash: doc.ContentHash,
		Status:      "active",
	}
	chunks := []*core.KnowledgeChunk{
		{Id: 10, ItemId: item.Id, Text: "regulation body", Index: 0, TokenCount: 2},
		{Id: 11, ItemId: item.Id, Text: "awaiting embeddings", Index: 1, TokenCount: 2},
	}

	if _, err := docRepo.SaveIntegration(context.Background(), &storage.Integration{
		Document: doc,
		Item:     item,
		Chunks:   chunks,
	}); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}
}

func TestBackfillRepairsMissingVectors(t *testing.T) {
	docRepo, knowledgeRepo, logRepo, backend, err := badgerstore.NewMemoryStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { logRepo.Close(); docRepo.Close(); backend.Close() }()

	seedMissingVectors(t, docRepo)

	embedder := mock.NewMockEmbedder()
	b := NewBackfiller(knowledgeRepo, embedder, &Config{
		BatchSize:     10,
		MaxRetries:    2,
		RetryDelay:    time.Millisecond,
		MaxInputChars: 1000,
	}, nil)

	result, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.ItemsRepaired != 1 {
		t.Fatalf("Expected 1 item repaired, got %d", result.ItemsRepaired)
	}
	if result.ChunksRepaired != 2 {
		t.Fatalf("Expected 2 chunks repaired, got %d", result.ChunksRepaired)
	}
	if result.Failures != 0 {
		t.Fatalf("Expected no failures, got %d", result.Failures)
	}

	remaining, err := knowledgeRepo.ChunksMissingVectors(context.Background(), 10)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("Expected no chunks left to repair, got %d", len(remaining))
	}
}

func TestBackfillToleratesEmbeddingFailure(t *testing.T) {
	docRepo, knowledgeRepo, logRepo, backend, err := badgerstore.NewMemoryStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { logRepo.Close(); docRepo.Close(); backend.Close() }()

	seedMissingVectors(t, docRepo)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding service down")
	}
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding service down")
	}

	b := NewBackfiller(knowledgeRepo, embedder, &Config{
		BatchSize:  10,
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
	}, nil)

	result, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run must not fail on embedding errors: %v", err)
	}
	if result.ItemsRepaired != 0 || result.ChunksRepaired != 0 {
		t.Fatalf("Expected nothing repaired, got %+v", result)
	}
	if result.Failures == 0 {
		t.Fatal("Expected failures counted")
	}
}

func TestBackfillEmptyStore(t *testing.T) {
	docRepo, knowledgeRepo, logRepo, backend, err := badgerstore.NewMemoryStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { logRepo.Close(); docRepo.Close(); backend.Close() }()

	b := NewBackfiller(knowledgeRepo, mock.NewMockEmbedder(), nil, nil)
	result, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.ItemsRepaired != 0 || result.ChunksRepaired != 0 || result.Failures != 0 {
		t.Fatalf("Expected empty result, got %+v", result)
	}
}
