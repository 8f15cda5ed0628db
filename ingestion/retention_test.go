package ingestion

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/lexfeed/core"
)

func TestRetentionSweepArchivesOldVersions(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()
	ctx := context.Background()
	url := "https://example.gov/regs/200"

	if _, err := env.ig.Integrate(ctx, request(url, "First wording of the retention test regulation body.")); err != nil {
		t.Fatalf("First integrate failed: %v", err)
	}
	v2, err := env.ig.Integrate(ctx, request(url, "Second wording of the retention test regulation body."))
	if err != nil {
		t.Fatalf("Second integrate failed: %v", err)
	}

	// maxAge below zero pushes the cutoff into the future, so the version
	// superseded moments ago is already eligible.
	archiver := NewArchiver(env.docs, env.log, -time.Hour, 100)
	archived, err := archiver.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if archived != 1 {
		t.Fatalf("Expected 1 archived document, got %d", archived)
	}

	prior, err := env.docs.GetDocument(ctx, v2.Document.PreviousVersionId)
	if err != nil {
		t.Fatalf("Failed to read archived document: %v", err)
	}
	if prior.Status != core.StatusArchived {
		t.Fatalf("Expected archived, got %s", prior.Status)
	}
	if prior.ArchiveReason != "retention" {
		t.Fatalf("Expected retention reason, got %q", prior.ArchiveReason)
	}
	if prior.ArchivedAt.IsZero() {
		t.Fatal("Expected archive timestamp")
	}

	// Idempotent: a second sweep finds nothing.
	again, err := archiver.Sweep(ctx)
	if err != nil {
		t.Fatalf("Second sweep failed: %v", err)
	}
	if again != 0 {
		t.Fatalf("Expected no candidates on second sweep, got %d", again)
	}
}

func TestRetentionSweepRespectsAge(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()
	ctx := context.Background()
	url := "https://example.gov/regs/201"

	if _, err := env.ig.Integrate(ctx, request(url, "Original body, about to be superseded for the age test.")); err != nil {
		t.Fatalf("First integrate failed: %v", err)
	}
	if _, err := env.ig.Integrate(ctx, request(url, "Replacement body that supersedes the original immediately.")); err != nil {
		t.Fatalf("Second integrate failed: %v", err)
	}

	// A large maxAge keeps the just-superseded version out of scope.
	archiver := NewArchiver(env.docs, env.log, 365*24*time.Hour, 100)
	archived, err := archiver.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if archived != 0 {
		t.Fatalf("Expected nothing archived, got %d", archived)
	}
}
