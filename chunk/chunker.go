// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package chunk splits document text into overlapping bounded-length chunks
// for embedding and semantic search. Each chunk carries a token estimate,
// a quality score, a junk flag, and rune offsets into the normalized source
// text.
package chunk

import (
	"strings"
	"unicode"

	"github.com/poiesic/lexfeed/core"
)

// Chunker splits text into chunks ready for embedding. Implementations must
// be safe for concurrent use.
type Chunker interface {
	// Split produces ordered chunks for the given text. The title is
	// prepended to the first chunk's context but never counted in offsets.
	// Returns nil for empty or whitespace-only input.
	Split(text, title string) []*core.KnowledgeChunk
}

// Splitter is the default Chunker. Chunk boundaries prefer sentence or
// newline breaks; consecutive chunks overlap so boundary-spanning phrases
// stay searchable.
type Splitter struct {
	maxTokens     int
	overlapTokens int
	ocrUsed       bool
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithMaxTokens sets the per-chunk token budget. Default 400.
func WithMaxTokens(n int) Option {
	return func(s *Splitter) {
		s.maxTokens = n
	}
}

// WithOverlapTokens sets the overlap budget between consecutive chunks.
// Default 50.
func WithOverlapTokens(n int) Option {
	return func(s *Splitter) {
		s.overlapTokens = n
	}
}

// WithOCRUsed marks produced chunks as derived from OCR output, so search
// consumers can weigh them accordingly.
func WithOCRUsed(used bool) Option {
	return func(s *Splitter) {
		s.ocrUsed = used
	}
}

// NewSplitter creates a Splitter with the given options.
func NewSplitter(opts ...Option) *Splitter {
	s := &Splitter{
		maxTokens:     400,
		overlapTokens: 50,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxTokens <= 0 {
		s.maxTokens = 400
	}
	if s.overlapTokens < 0 || s.overlapTokens >= s.maxTokens {
		s.overlapTokens = s.maxTokens / 8
	}
	return s
}

var _ Chunker = (*Splitter)(nil)

// Split implements Chunker.
func (s *Splitter) Split(text, title string) []*core.KnowledgeChunk {
	cleaned := strings.TrimSpace(normalizeNewlines(text))
	if cleaned == "" {
		return nil
	}

	runes := []rune(cleaned)
	total := len(runes)

	// Token budgets translate to rune budgets at roughly 4 runes per token,
	// matching the estimate below for mixed prose.
	maxChars := s.maxTokens * 4
	overlapChars := s.overlapTokens * 4
	minChars := maxChars / 2
	if minChars < 200 {
		minChars = 200
	}
	if minChars >= maxChars {
		minChars = maxChars / 2
	}

	var chunks []*core.KnowledgeChunk
	start := 0
	for start < total {
		end := start + maxChars
		if end >= total {
			end = total
		} else {
			preferred := findBoundary(runes, start+minChars, end)
			if preferred > start+minChars {
				end = preferred
			}
		}

		chunkText := strings.TrimSpace(string(runes[start:end]))
		if chunkText != "" {
			chunks = append(chunks, s.buildChunk(chunkText, len(chunks), title, start, end))
		}

		if end >= total {
			break
		}
		next := end - overlapChars
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks
}

func (s *Splitter) buildChunk(text string, index int, title string, start, end int) *core.KnowledgeChunk {
	junk, quality := assessQuality(text)
	embedText := text
	if index == 0 && title != "" {
		embedText = title + "\n\n" + text
	}
	return &core.KnowledgeChunk{
		Text:         embedText,
		Index:        index,
		TokenCount:   EstimateTokens(text),
		QualityScore: quality,
		Junk:         junk,
		OCRUsed:      s.ocrUsed,
		StartOffset:  start,
		EndOffset:    end,
	}
}

// assessQuality scores a chunk in [0,1]. Chunks that are mostly punctuation,
// digits, or too short to carry meaning are flagged as junk and excluded
// from similarity search.
func assessQuality(text string) (junk bool, score float64) {
	runes := []rune(text)
	if len(runes) < 20 {
		return true, 0.1
	}

	var letters, digits, spaces int
	for _, r := range runes {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		case unicode.IsSpace(r):
			spaces++
		}
	}

	alphaRatio := float64(letters) / float64(len(runes))
	score = alphaRatio
	if score > 1 {
		score = 1
	}

	// Tables of numbers and separator runs read as noise.
	if alphaRatio < 0.4 {
		return true, score
	}
	if len(strings.Fields(text)) < 4 {
		return true, score
	}
	return false, score
}

// EstimateTokens approximates the token count of text. It blends word count
// with rune length so both prose and dense legal numbering estimate sanely.
func EstimateTokens(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	words := strings.Fields(trimmed)
	wordCount := len(words)
	runeCount := len([]rune(trimmed))
	estimate := wordCount + runeCount/3
	if estimate < wordCount {
		estimate = wordCount
	}
	if estimate <= 0 {
		estimate = runeCount/2 + 1
	}
	return estimate
}

func normalizeNewlines(value string) string {
	if value == "" {
		return ""
	}
	replaced := strings.ReplaceAll(value, "\r\n", "\n")
	return strings.ReplaceAll(replaced, "\r", "\n")
}

// findBoundary scans backward in [min, max) for a sentence or line break and
// returns the position just after it, or max when none is found.
func findBoundary(runes []rune, min int, max int) int {
	if min < 0 {
		min = 0
	}
	if max > len(runes) {
		max = len(runes)
	}
	if max <= min {
		return min
	}
	for i := max - 1; i >= min; i-- {
		switch runes[i] {
		case '\n', '.', '!', '?', '。', '！', '？':
			return i + 1
		}
	}
	return max
}
