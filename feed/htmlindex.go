package feed

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/poiesic/lexfeed/core"
)

// HTMLIndexParser extracts document links from an HTML listing page for
// authorities that publish without a feed. It looks for anchors inside the
// main content area and skips navigation, fragments, and non-document links.
type HTMLIndexParser struct {
	// selector narrows the scanned region. Defaults to common content
	// containers with a whole-document fallback.
	selector string
}

// NewHTMLIndexParser creates an HTML listing parser.
func NewHTMLIndexParser() *HTMLIndexParser {
	return &HTMLIndexParser{selector: "main a[href], article a[href], #content a[href], .content a[href]"}
}

var _ Parser = (*HTMLIndexParser)(nil)

// Parse implements Parser.
func (p *HTMLIndexParser) Parse(baseURL string, data []byte) ([]*core.FeedItem, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	anchors := doc.Find(p.selector)
	if anchors.Length() == 0 {
		anchors = doc.Find("a[href]")
	}

	seen := make(map[string]struct{})
	var items []*core.FeedItem
	anchors.Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if skipHref(href) {
			return
		}

		title := strings.TrimSpace(sel.Text())
		if title == "" {
			return
		}

		resolved := resolveURL(baseURL, href)
		if resolved == "" || resolved == baseURL {
			return
		}
		if _, dup := seen[resolved]; dup {
			return
		}
		seen[resolved] = struct{}{}

		items = append(items, &core.FeedItem{
			Title:       title,
			URL:         resolved,
			PublishedAt: parseFeedTime(""),
			GUID:        resolved,
		})
	})
	return items, nil
}

func skipHref(href string) bool {
	if href == "" || strings.HasPrefix(href, "#") {
		return true
	}
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "tel:")
}

// resolveURL makes href absolute against base. Returns the href unchanged
// when either URL fails to parse.
func resolveURL(base, href string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}
