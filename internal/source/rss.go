// Package source fetches and parses a single RSS/Atom feed into candidate
// items for classification.
package source

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/samber/lo"

	"github.com/0x0BSoD/feedPoster/internal/model"
)

type RSSSource struct {
	URL      string
	Category string

	parser *gofeed.Parser
}

func NewRSSSource(feed model.Feed, timeout time.Duration) RSSSource {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}

	return RSSSource{
		URL:      feed.URL,
		Category: feed.Category,
		parser:   parser,
	}
}

// Fetch parses the feed and maps its entries to candidate items. Entries
// carrying neither a link (nor GUID) nor a title are dropped here, before
// classification is ever consulted.
func (s RSSSource) Fetch(ctx context.Context) ([]model.Item, error) {
	feed, err := s.parser.ParseURLWithContext(s.URL, ctx)
	if err != nil {
		return nil, err
	}

	items := lo.Map(feed.Items, func(item *gofeed.Item, _ int) model.Item {
		return model.Item{
			Link:       itemLink(item),
			Title:      item.Title,
			Published:  itemPublished(item),
			Categories: item.Categories,
			Summary:    itemText(item),
			ImageURL:   itemImage(item),
			Category:   s.Category,
		}
	})

	return lo.Filter(items, func(item model.Item, _ int) bool {
		return item.Link != "" || item.Title != ""
	}), nil
}

func itemLink(item *gofeed.Item) string {
	if item.Link != "" {
		return item.Link
	}
	return item.GUID
}

// itemPublished returns the feed-native date string. It is display text:
// gofeed's parsed variants are ignored on purpose so the channel shows
// whatever the feed said.
func itemPublished(item *gofeed.Item) string {
	if item.Published != "" {
		return item.Published
	}
	return item.Updated
}

// itemText returns the richest available text for an item. Content (full
// body) is preferred over Description (short excerpt); falling back to
// Description avoids an extra HTTP fetch for feeds that omit Content.
func itemText(item *gofeed.Item) string {
	if c := strings.TrimSpace(item.Content); c != "" {
		return c
	}
	return strings.TrimSpace(item.Description)
}

// itemImage picks an image candidate: media:content first, then an image
// enclosure, then the item's own image element.
func itemImage(item *gofeed.Item) string {
	if media, ok := item.Extensions["media"]; ok {
		for _, content := range media["content"] {
			if url := content.Attrs["url"]; url != "" {
				return url
			}
		}
	}

	for _, enc := range item.Enclosures {
		if enc.URL == "" {
			continue
		}
		if enc.Type == "" || strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}

	if item.Image != nil {
		return item.Image.URL
	}
	return ""
}
