package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/lexfeed/core"
)

// RSSParser decodes RSS 2.0 documents. It is the default parser and the
// fallback for unknown kinds, so it tolerates sloppy feeds: missing dates
// fall back to the current time and items without links are skipped.
type RSSParser struct{}

// NewRSSParser creates an RSS 2.0 parser.
func NewRSSParser() *RSSParser {
	return &RSSParser{}
}

var _ Parser = (*RSSParser)(nil)

type rssDocument struct {
	XMLName xml.Name   `xml:"rss"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// Parse implements Parser.
func (p *RSSParser) Parse(baseURL string, data []byte) ([]*core.FeedItem, error) {
	var doc rssDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	items := make([]*core.FeedItem, 0, len(doc.Channel.Items))
	for _, entry := range doc.Channel.Items {
		link := strings.TrimSpace(entry.Link)
		if link == "" {
			continue
		}
		item := &core.FeedItem{
			Title:       strings.TrimSpace(entry.Title),
			URL:         resolveURL(baseURL, link),
			Description: strings.TrimSpace(entry.Description),
			PublishedAt: parseFeedTime(entry.PubDate),
			GUID:        strings.TrimSpace(entry.GUID),
		}
		if item.GUID == "" {
			item.GUID = item.URL
		}
		items = append(items, item)
	}
	return items, nil
}

// parseFeedTime tries the date layouts seen in the wild for RSS pubDate and
// Atom timestamps. Missing or unparseable dates fall back to now so a sloppy
// feed never blocks ingestion.
func parseFeedTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now().UTC()
	}
	layouts := []string{
		time.RFC1123Z,
		time.RFC1123,
		time.RFC822Z,
		time.RFC822,
		time.RFC3339,
		"2006-01-02T15:04:05Z0700",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}
