// Package scrape pulls the full article body and lead image for a candidate
// link, when the feed entry alone is not enough.
package scrape

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
)

// Extraction is the well-defined result of a successful article fetch. When
// extraction is unavailable (download or parse failure, or an empty body)
// Extract returns an error and the caller takes its fallback branch
// explicitly.
type Extraction struct {
	Text  string
	Image string
}

type Scraper struct {
	timeout time.Duration
}

func New(timeout time.Duration) *Scraper {
	return &Scraper{timeout: timeout}
}

func (s *Scraper) Extract(link string) (Extraction, error) {
	article, err := readability.FromURL(link, s.timeout)
	if err != nil {
		return Extraction{}, fmt.Errorf("extract %s: %w", link, err)
	}

	text := cleanupText(article.TextContent)
	if text == "" {
		return Extraction{}, fmt.Errorf("extract %s: no article text", link)
	}

	return Extraction{
		Text:  text,
		Image: article.Image,
	}, nil
}

var redundantNewLines = regexp.MustCompile(`\n{3,}`)

func cleanupText(text string) string {
	return strings.TrimSpace(redundantNewLines.ReplaceAllString(text, "\n"))
}
