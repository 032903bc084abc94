// Package feedlist loads the feed-list configuration: a CSV with one row per
// feed, read from a local path or an HTTP(S) URL such as a published
// spreadsheet export.
package feedlist

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/0x0BSoD/feedPoster/internal/model"
)

// Accepted column names, in priority order. Matching is case-insensitive.
var (
	urlAliases      = []string{"feed_url", "url", "rss", "feed"}
	categoryAliases = []string{"category", "cat", "tag"}
)

type Loader struct {
	client *http.Client
	logger *slog.Logger
}

func New(timeout time.Duration, logger *slog.Logger) *Loader {
	return &Loader{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Load fetches and parses the feed list. A failure to read or parse the
// source is logged and yields an empty list; the sweep then completes
// vacuously rather than aborting.
func (l *Loader) Load(ctx context.Context, source string) []model.Feed {
	rc, err := l.open(ctx, source)
	if err != nil {
		l.logger.Error("failed to read feed list", "source", source, "err", err)
		return nil
	}
	defer rc.Close()

	feeds, err := parse(rc)
	if err != nil {
		l.logger.Error("failed to parse feed list", "source", source, "err", err)
		return nil
	}

	return feeds
}

func (l *Loader) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return resp.Body, nil
	}
	return os.Open(source)
}

func parse(r io.Reader) ([]model.Feed, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	header = lo.Map(header, func(h string, _ int) string {
		return strings.ToLower(strings.TrimSpace(h))
	})
	urlIdx := columnIndex(header, urlAliases)
	if urlIdx < 0 {
		return nil, fmt.Errorf("no feed URL column among %v", urlAliases)
	}
	categoryIdx := columnIndex(header, categoryAliases)

	var feeds []model.Feed
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return feeds, fmt.Errorf("read row: %w", err)
		}

		feed := model.Feed{
			URL:      field(record, urlIdx),
			Category: field(record, categoryIdx),
		}
		if feed.URL == "" {
			continue
		}
		feeds = append(feeds, feed)
	}

	return feeds, nil
}

func columnIndex(header, aliases []string) int {
	for _, alias := range aliases {
		if idx := lo.IndexOf(header, alias); idx >= 0 {
			return idx
		}
	}
	return -1
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
