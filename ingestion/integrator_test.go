package ingestion

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/lexfeed/ai/mock"
	"github.com/poiesic/lexfeed/core"
	"github.com/poiesic/lexfeed/storage"
	badgerstore "github.com/poiesic/lexfeed/storage/badger"
)

type testEnv struct {
	docs     storage.DocumentRepository
	know     storage.KnowledgeRepository
	log      storage.ProcessingLogRepository
	embedder *mock.MockEmbedder
	ig       *Integrator
	cleanup  func()
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	docs, know, log, backend, err := badgerstore.NewMemoryStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	embedder := mock.NewMockEmbedder()
	ig := NewIntegrator(docs, log, embedder)
	return &testEnv{
		docs:     docs,
		know:     know,
		log:      log,
		embedder: embedder,
		ig:       ig,
		cleanup: func() {
			log.Close()
			docs.Close()
			backend.Close()
		},
	}
}

func request(url, text string) *Request {
	return &Request{
		URL:         url,
		Title:       "Regulation 2024:117 on mandatory reporting",
		Text:        text,
		Source:      "test-feed",
		SourceType:  "rss",
		Authority:   "skatteverket",
		TriggeredBy: "test",
	}
}

func TestIntegrateCreatesVersionOne(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()
	ctx := context.Background()

	text := "Article 1. All covered institutions shall file quarterly tax reports without undue delay."
	result, err := env.ig.Integrate(ctx, request("https://example.gov/regs/117", text))
	if err != nil {
		t.Fatalf("Integrate failed: %v", err)
	}
	if result.Outcome != OutcomeCreated {
		t.Fatalf("Expected created, got %s", result.Outcome)
	}
	doc := result.Document
	if doc.Version != 1 {
		t.Fatalf("Expected version 1, got %d", doc.Version)
	}
	if doc.Status != core.StatusActive {
		t.Fatalf("Expected active status, got %s", doc.Status)
	}
	if doc.ContentHash != core.HashContent(text) {
		t.Fatal("Expected content hash persisted")
	}
	if doc.KnowledgeItemId == 0 {
		t.Fatal("Expected knowledge item linked")
	}
	if result.ChunkCount == 0 {
		t.Fatal("Expected chunks produced")
	}
	if result.EmbeddingDegraded {
		t.Fatal("Expected embeddings to succeed with mock")
	}

	item, err := env.know.GetKnowledgeItem(ctx, doc.KnowledgeItemId)
	if err != nil {
		t.Fatalf("Failed to read knowledge item: %v", err)
	}
	if len(item.Vector) == 0 {
		t.Fatal("Expected item vector stored")
	}
	chunks, err := env.know.GetChunks(ctx, item.Id)
	if err != nil {
		t.Fatalf("Failed to read chunks: %v", err)
	}
	if len(chunks) != result.ChunkCount {
		t.Fatalf("Expected %d chunks, got %d", result.ChunkCount, len(chunks))
	}
}

func TestIntegrateIdenticalContentIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()
	ctx := context.Background()

	text := "Article 1. The provisions enter into force on 1 July 2024 for every registered entity."
	first, err := env.ig.Integrate(ctx, request("https://example.gov/regs/118", text))
	if err != nil {
		t.Fatalf("First integrate failed: %v", err)
	}

	second, err := env.ig.Integrate(ctx, request("https://example.gov/regs/118", text))
	if err != nil {
		t.Fatalf("Second integrate failed: %v", err)
	}
	if second.Outcome != OutcomeSkipped {
		t.Fatalf("Expected skipped, got %s", second.Outcome)
	}
	if second.Document.Id != first.Document.Id {
		t.Fatal("Expected the existing document returned")
	}
	if second.Document.Version != 1 {
		t.Fatalf("Hash-equality no-op must not create a version, got %d", second.Document.Version)
	}
}

func TestIntegrateChangedContentSupersedes(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()
	ctx := context.Background()
	url := "https://example.gov/regs/119"

	v1, err := env.ig.Integrate(ctx, request(url, "Original wording of the regulation, first publication for all entities."))
	if err != nil {
		t.Fatalf("First integrate failed: %v", err)
	}

	req := request(url, "Amended wording of the regulation with stricter sanction provisions applied.")
	req.Metadata = map[string]string{"revision_note": "sanctions added"}
	v2, err := env.ig.Integrate(ctx, req)
	if err != nil {
		t.Fatalf("Second integrate failed: %v", err)
	}

	if v2.Outcome != OutcomeUpdated {
		t.Fatalf("Expected updated, got %s", v2.Outcome)
	}
	if v2.Document.Version != v1.Document.Version+1 {
		t.Fatalf("Expected version increment by exactly 1, got %d", v2.Document.Version)
	}
	if v2.Document.PreviousVersionId != v1.Document.Id {
		t.Fatal("Expected back-reference to prior version")
	}
	if v2.Document.Metadata["version"] != "2" {
		t.Fatalf("Expected merged metadata version=2, got %q", v2.Document.Metadata["version"])
	}
	if v2.Document.Metadata["revision_note"] != "sanctions added" {
		t.Fatal("Expected new metadata merged")
	}

	prior, err := env.docs.GetDocument(ctx, v1.Document.Id)
	if err != nil {
		t.Fatalf("Failed to read prior: %v", err)
	}
	if prior.Status != core.StatusSuperseded {
		t.Fatalf("Expected prior superseded, got %s", prior.Status)
	}

	active, err := env.docs.GetActiveByURL(ctx, url)
	if err != nil {
		t.Fatalf("Failed to read active: %v", err)
	}
	if active.Id != v2.Document.Id {
		t.Fatal("Expected exactly the new version active")
	}
}

func TestIntegrateHashLookupCatchesMirroredURL(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()
	ctx := context.Background()

	text := "Identical decree text mirrored under two addresses by the authority portal."
	if _, err := env.ig.Integrate(ctx, request("https://example.gov/regs/120", text)); err != nil {
		t.Fatalf("First integrate failed: %v", err)
	}

	mirrored, err := env.ig.Integrate(ctx, request("https://mirror.example.gov/regs/120", text))
	if err != nil {
		t.Fatalf("Mirrored integrate failed: %v", err)
	}
	if mirrored.Outcome != OutcomeSkipped {
		t.Fatalf("Expected hash dedup to skip mirrored URL, got %s", mirrored.Outcome)
	}
}

func TestIntegrateEmbeddingFailureIsDegradedNotFatal(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()
	ctx := context.Background()

	env.embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding service down")
	}
	env.embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding service down")
	}

	result, err := env.ig.Integrate(ctx, request("https://example.gov/regs/121",
		"Regulation text that must be persisted even while the embedding service is unavailable."))
	if err != nil {
		t.Fatalf("Integrate must tolerate embedding failure: %v", err)
	}
	if !result.EmbeddingDegraded {
		t.Fatal("Expected degraded flag")
	}
	if result.Document.Id == 0 {
		t.Fatal("Expected document persisted")
	}

	missing, err := env.know.ItemsMissingVectors(ctx, 10)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(missing) != 1 {
		t.Fatalf("Expected item queued for backfill, got %d", len(missing))
	}
}

func TestIntegrateValidation(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	_, err := env.ig.Integrate(context.Background(), &Request{Title: "x", Text: "y", Source: "s"})
	if !errors.Is(err, ErrMissingURL) {
		t.Fatalf("Expected ErrMissingURL, got %v", err)
	}
	_, err = env.ig.Integrate(context.Background(), &Request{URL: "https://x", Source: "s"})
	if !errors.Is(err, ErrMissingText) {
		t.Fatalf("Expected ErrMissingText, got %v", err)
	}
}

func TestIntegrateWritesProcessingLog(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()
	ctx := context.Background()

	if _, err := env.ig.Integrate(ctx, request("https://example.gov/regs/122",
		"Short regulation body for the audit trail test, published by the authority.")); err != nil {
		t.Fatalf("Integrate failed: %v", err)
	}

	entries, err := env.log.GetRecent(ctx, 10)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}
	if entries[0].Operation != "integrate" || entries[0].Status != "created" {
		t.Fatalf("Unexpected log entry: %+v", entries[0])
	}
}
