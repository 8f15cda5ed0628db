package chunk

import (
	"strings"
	"testing"
)

func TestSplitEmptyInput(t *testing.T) {
	s := NewSplitter()
	if got := s.Split("", "Title"); got != nil {
		t.Fatalf("Expected nil for empty input, got %d chunks", len(got))
	}
	if got := s.Split("   \n\t  ", "Title"); got != nil {
		t.Fatalf("Expected nil for whitespace input, got %d chunks", len(got))
	}
}

func TestSplitShortText(t *testing.T) {
	s := NewSplitter()
	text := "Article 1. The provisions of this regulation apply to all registered entities."
	chunks := s.Split(text, "Regulation 2024/17")

	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	c := chunks[0]
	if c.Index != 0 {
		t.Fatalf("Expected index 0, got %d", c.Index)
	}
	if !strings.HasPrefix(c.Text, "Regulation 2024/17") {
		t.Fatal("Expected title prepended to first chunk")
	}
	if c.TokenCount <= 0 {
		t.Fatal("Expected positive token estimate")
	}
	if c.Junk {
		t.Fatal("Prose chunk must not be junk")
	}
	if c.StartOffset != 0 || c.EndOffset != len([]rune(text)) {
		t.Fatalf("Unexpected offsets %d..%d", c.StartOffset, c.EndOffset)
	}
}

func TestSplitLongTextOverlaps(t *testing.T) {
	s := NewSplitter(WithMaxTokens(100), WithOverlapTokens(20))

	var b strings.Builder
	for i := 0; i < 80; i++ {
		b.WriteString("The competent authority shall publish every amendment without undue delay. ")
	}
	chunks := s.Split(b.String(), "")

	if len(chunks) < 2 {
		t.Fatalf("Expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Fatalf("Expected contiguous indexes, got %d at position %d", c.Index, i)
		}
		if c.EndOffset <= c.StartOffset {
			t.Fatalf("Chunk %d has empty offset range", i)
		}
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i].StartOffset >= chunks[i-1].EndOffset {
			t.Fatalf("Expected chunk %d to overlap its predecessor", i)
		}
		if chunks[i].StartOffset <= chunks[i-1].StartOffset {
			t.Fatalf("Expected forward progress at chunk %d", i)
		}
	}
}

func TestJunkDetection(t *testing.T) {
	s := NewSplitter()

	tests := []struct {
		name string
		text string
		junk bool
	}{
		{"numeric table", strings.Repeat("12 345 678 90 | ", 20), true},
		{"separator run", strings.Repeat("-=-=-=-=- 1 2 ", 15), true},
		{"normal prose", "The agency issued updated guidance clarifying the reporting obligations of all covered institutions under the framework.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := s.Split(tt.text, "")
			if len(chunks) == 0 {
				t.Fatal("Expected at least one chunk")
			}
			if chunks[0].Junk != tt.junk {
				t.Fatalf("Expected junk=%v, got %v (score %.2f)", tt.junk, chunks[0].Junk, chunks[0].QualityScore)
			}
		})
	}
}

func TestOCRFlag(t *testing.T) {
	s := NewSplitter(WithOCRUsed(true))
	chunks := s.Split("Scanned decree text recovered from the archival register of the ministry.", "")
	if len(chunks) != 1 || !chunks[0].OCRUsed {
		t.Fatal("Expected OCR flag on produced chunks")
	}
}

func TestEstimateTokens(t *testing.T) {
	if EstimateTokens("") != 0 {
		t.Fatal("Empty text estimates zero tokens")
	}
	short := EstimateTokens("two words")
	long := EstimateTokens(strings.Repeat("two words ", 50))
	if short <= 0 || long <= short {
		t.Fatalf("Expected monotonic estimates, got %d and %d", short, long)
	}
}
