package fetch

import (
	"encoding/xml"
	"fmt"

	"github.com/karmabot/karmalog/internal/feed"
)

// Minimal Atom shapes; only the fields the pipeline consumes.
type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Author  atomAuthor `xml:"author"`
	Links   []atomLink `xml:"link"`
	Updated string     `xml:"updated"`
	Content string     `xml:"content"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
}

// ParseAtom converts an Atom document into raw feed items. The entry
// content is kept as-is: Google Code feeds carry an entity-encoded HTML
// body, and the XML decoder's one level of unescaping leaves exactly
// that encoded text.
func ParseAtom(body []byte) ([]feed.Item, error) {
	var doc atomFeed
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal atom: %w", err)
	}

	items := make([]feed.Item, 0, len(doc.Entries))
	for _, entry := range doc.Entries {
		items = append(items, feed.Item{
			Author:  entry.Author.Name,
			Link:    entryLink(entry),
			Updated: feed.TimeKey(entry.Updated),
			Content: entry.Content,
		})
	}
	return items, nil
}

// entryLink picks the alternate link, falling back to the first one.
func entryLink(entry atomEntry) string {
	for _, link := range entry.Links {
		if link.Rel == "alternate" || link.Rel == "" {
			return link.Href
		}
	}
	if len(entry.Links) > 0 {
		return entry.Links[0].Href
	}
	return ""
}
