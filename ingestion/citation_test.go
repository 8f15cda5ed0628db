package ingestion

import (
	"testing"
	"time"

	"github.com/poiesic/lexfeed/core"
)

func TestDeriveCitation(t *testing.T) {
	doc := &core.RegulatoryDocument{
		Title:          "SKVFS 2024:12 amendment to reporting rules",
		URL:            "https://example.gov/regs/12",
		Authority:      "skatteverket",
		DocumentNumber: "2024:12",
		PublishedAt:    time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
	}

	c := DeriveCitation(doc)
	if c.Authority != "Skatteverket (Swedish Tax Agency)" {
		t.Fatalf("Unexpected authority: %q", c.Authority)
	}
	if c.DocumentType != "amendment" {
		t.Fatalf("Unexpected type: %q", c.DocumentType)
	}
	if c.Reference != "2024:12" {
		t.Fatalf("Unexpected reference: %q", c.Reference)
	}
	if c.FormattedDate != "6 May 2024" {
		t.Fatalf("Unexpected date: %q", c.FormattedDate)
	}
}

func TestDeriveCitationFallbacks(t *testing.T) {
	doc := &core.RegulatoryDocument{
		Title:     "General notice",
		URL:       "https://example.gov/notices/1",
		Authority: "unknown-board",
	}

	c := DeriveCitation(doc)
	if c.Authority != "unknown-board" {
		t.Fatalf("Expected raw identifier passthrough, got %q", c.Authority)
	}
	if c.DocumentType != "notice" {
		t.Fatalf("Expected notice, got %q", c.DocumentType)
	}
	if c.Reference != doc.URL {
		t.Fatal("Expected URL fallback reference")
	}
	if c.FormattedDate != "" {
		t.Fatalf("Expected empty date, got %q", c.FormattedDate)
	}
}

func TestDeriveCitationIsPure(t *testing.T) {
	doc := &core.RegulatoryDocument{
		Title:       "Decision on permits",
		URL:         "https://example.gov/d/1",
		Authority:   "boverket",
		PublishedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	a := DeriveCitation(doc)
	b := DeriveCitation(doc)
	if a != b {
		t.Fatal("Expected deterministic derivation")
	}
	if doc.Title != "Decision on permits" {
		t.Fatal("Derivation must not mutate the document")
	}
}
