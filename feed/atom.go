package feed

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/poiesic/lexfeed/core"
)

// AtomParser decodes Atom feeds.
type AtomParser struct{}

// NewAtomParser creates an Atom parser.
func NewAtomParser() *AtomParser {
	return &AtomParser{}
}

var _ Parser = (*AtomParser)(nil)

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title     string     `xml:"title"`
	Links     []atomLink `xml:"link"`
	Summary   string     `xml:"summary"`
	Content   string     `xml:"content"`
	Published string     `xml:"published"`
	Updated   string     `xml:"updated"`
	ID        string     `xml:"id"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
}

// Parse implements Parser.
func (p *AtomParser) Parse(baseURL string, data []byte) ([]*core.FeedItem, error) {
	var doc atomFeed
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	items := make([]*core.FeedItem, 0, len(doc.Entries))
	for _, entry := range doc.Entries {
		link := entry.alternateLink()
		if link == "" {
			continue
		}

		published := entry.Published
		if strings.TrimSpace(published) == "" {
			published = entry.Updated
		}

		description := strings.TrimSpace(entry.Summary)
		if description == "" {
			description = strings.TrimSpace(entry.Content)
		}

		item := &core.FeedItem{
			Title:       strings.TrimSpace(entry.Title),
			URL:         resolveURL(baseURL, link),
			Description: description,
			PublishedAt: parseFeedTime(published),
			GUID:        strings.TrimSpace(entry.ID),
		}
		if item.GUID == "" {
			item.GUID = item.URL
		}
		items = append(items, item)
	}
	return items, nil
}

// alternateLink picks the rel="alternate" link, or the first link with an
// href when no rel is present.
func (e *atomEntry) alternateLink() string {
	var fallback string
	for _, link := range e.Links {
		href := strings.TrimSpace(link.Href)
		if href == "" {
			continue
		}
		if link.Rel == "alternate" || link.Rel == "" {
			return href
		}
		if fallback == "" {
			fallback = href
		}
	}
	return fallback
}
