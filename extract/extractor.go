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


// Package extract turns a document URL into plain text for integration.
// Extraction never returns a Go error across the boundary: failures are
// reported in-band on the Result so callers can log and move on.
package extract

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/poiesic/lexfeed/feed"
)

// Result is the in-band outcome of one extraction.
type Result struct {
	Success     bool
	Text        string
	ContentType string
	CharCount   int
	WordCount   int
	Error       string
}

// Extractor fetches a document and extracts its text content.
// Implementations must be safe for concurrent use and must not return
// errors; failure is reported on the Result.
type Extractor interface {
	Extract(ctx context.Context, url string) *Result
}

// HTMLExtractor extracts readable text from HTML documents, falling back to
// the raw body for plain-text responses.
type HTMLExtractor struct {
	fetcher *feed.Fetcher
	logger  *slog.Logger
}

var _ Extractor = (*HTMLExtractor)(nil)

// NewHTMLExtractor creates an extractor sharing the feed fetcher's timeout
// and retry behavior.
func NewHTMLExtractor(fetcher *feed.Fetcher) *HTMLExtractor {
	if fetcher == nil {
		fetcher = feed.NewFetcher()
	}
	return &HTMLExtractor{
		fetcher: fetcher,
		logger:  slog.Default().With("component", "extractor"),
	}
}

// Extract implements Extractor.
func (e *HTMLExtractor) Extract(ctx context.Context, url string) *Result {
	data, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		e.logger.Warn("document fetch failed", "url", url, "err", err)
		return &Result{Error: err.Error()}
	}

	var text string
	contentType := sniffContentType(data)
	if contentType == "text/html" {
		text, err = extractHTMLText(data)
		if err != nil {
			e.logger.Warn("document parse failed", "url", url, "err", err)
			return &Result{ContentType: contentType, Error: err.Error()}
		}
	} else {
		text = strings.TrimSpace(string(data))
	}

	if text == "" {
		return &Result{ContentType: contentType, Error: "no extractable text"}
	}

	return &Result{
		Success:     true,
		Text:        text,
		ContentType: contentType,
		CharCount:   len([]rune(text)),
		WordCount:   len(strings.Fields(text)),
	}
}

func sniffContentType(data []byte) string {
	head := bytes.ToLower(bytes.TrimSpace(data))
	if bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html")) || bytes.Contains(head[:min(len(head), 512)], []byte("<body")) {
		return "text/html"
	}
	return "text/plain"
}

// extractHTMLText pulls the readable content out of an HTML page, preferring
// the main content region and dropping script, style, and navigation chrome.
func extractHTMLText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, nav, header, footer, aside").Remove()

	region := doc.Find("main")
	if region.Length() == 0 {
		region = doc.Find("article")
	}
	if region.Length() == 0 {
		region = doc.Find("body")
	}
	if region.Length() == 0 {
		region = doc.Selection
	}

	var b strings.Builder
	region.Find("h1, h2, h3, h4, p, li, td, pre").Each(func(_ int, sel *goquery.Selection) {
		line := strings.TrimSpace(sel.Text())
		if line == "" {
			return
		}
		b.WriteString(line)
		b.WriteString("\n")
	})

	text := strings.TrimSpace(b.String())
	if text == "" {
		// Pages without block structure still get their raw text.
		text = strings.TrimSpace(region.Text())
		text = strings.Join(strings.Fields(text), " ")
	}
	return text, nil
}
