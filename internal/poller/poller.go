// Package poller runs the publish pipeline: load the feed list, walk every
// entry of every feed, classify it against the ledger, enrich what survives,
// deliver it, and record it. Execution is strictly sequential, one feed and
// one entry at a time: delivery order matters and the ledger has a single
// writer.
package poller

import (
	"context"
	"log/slog"
	"time"

	"github.com/0x0BSoD/feedPoster/internal/dedup"
	"github.com/0x0BSoD/feedPoster/internal/model"
	"github.com/0x0BSoD/feedPoster/internal/scrape"
	"github.com/0x0BSoD/feedPoster/internal/summary"
)

type FeedLister interface {
	Load(ctx context.Context, source string) []model.Feed
}

type Source interface {
	Fetch(ctx context.Context) ([]model.Item, error)
}

// SourceFactory builds the fetcher for one configured feed.
type SourceFactory func(feed model.Feed) Source

type Store interface {
	Items() []model.PublishedItem
	Append(item model.Item, summaryText, topImage string)
	Dirty() bool
	Persist(path string) error
}

type Scraper interface {
	Extract(link string) (scrape.Extraction, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type Publisher interface {
	Publish(ctx context.Context, item model.Item, summaryText, imageURL string) error
}

// Notifier receives operational warnings (admin chat). Implementations are
// nil-safe.
type Notifier interface {
	Notify(msg string)
}

// Deps wires all collaborators into the pipeline.
type Deps struct {
	Feeds      FeedLister
	FeedsCSV   string
	NewSource  SourceFactory
	Store      Store
	StorePath  string
	Threshold  int
	Scraper    Scraper
	Summarizer Summarizer
	Publisher  Publisher
	Reporter   Notifier
	Logger     *slog.Logger

	PostDelay    time.Duration
	PollInterval time.Duration
}

type Poller struct {
	deps Deps
}

func New(deps Deps) *Poller {
	if deps.Threshold <= 0 {
		deps.Threshold = dedup.DefaultThreshold
	}
	return &Poller{deps: deps}
}

// Start runs a sweep immediately and then once per poll interval until the
// context is cancelled.
func (p *Poller) Start(ctx context.Context) error {
	ticker := time.NewTicker(p.deps.PollInterval)
	defer ticker.Stop()

	if err := p.Sweep(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := p.Sweep(ctx); err != nil {
				return err
			}
		}
	}
}

// Sweep processes every feed and entry once. Per-feed and per-item failures
// are logged and skipped at that granularity; the only error Sweep itself
// returns is context cancellation, in which case the ledger is left
// unpersisted and the next run redoes the unrecorded work.
func (p *Poller) Sweep(ctx context.Context) error {
	feeds := p.deps.Feeds.Load(ctx, p.deps.FeedsCSV)
	p.deps.Logger.Info("loaded feed list", "feeds", len(feeds))

	newCount := 0
	for _, feed := range feeds {
		p.deps.Logger.Info("checking feed", "url", feed.URL, "category", feed.Category)

		items, err := p.deps.NewSource(feed).Fetch(ctx)
		if err != nil {
			p.deps.Logger.Warn("failed to fetch feed", "url", feed.URL, "err", err)
			continue
		}

		for _, item := range items {
			if err := ctx.Err(); err != nil {
				return err
			}
			if item.Link == "" && item.Title == "" {
				continue
			}

			res := dedup.Classify(p.deps.Store.Items(), item.Link, item.Title, p.deps.Threshold)
			if res.Duplicate {
				p.deps.Logger.Debug("skipping duplicate", "title", item.Title, "reason", string(res.Reason))
				continue
			}

			summaryText, imageURL := p.enrich(ctx, item)

			if err := p.deps.Publisher.Publish(ctx, item, summaryText, imageURL); err != nil {
				p.deps.Logger.Warn("post failed, item stays eligible for the next run", "title", item.Title, "err", err)
				continue
			}

			p.deps.Store.Append(item, summaryText, imageURL)
			newCount++

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.deps.PostDelay):
			}
		}
	}

	if p.deps.Store.Dirty() {
		if err := p.deps.Store.Persist(p.deps.StorePath); err != nil {
			p.deps.Logger.Warn("failed to persist ledger, items will be re-derived next run", "path", p.deps.StorePath, "err", err)
			if p.deps.Reporter != nil {
				p.deps.Reporter.Notify("feedPoster: failed to persist ledger: " + err.Error())
			}
		}
	}

	p.deps.Logger.Info("sweep complete", "new", newCount)
	return nil
}

// enrich produces the summary text and image for one item: scraped article
// body ranked down to a few sentences when the link is reachable, otherwise
// the feed's own excerpt. Both failure branches are explicit; an item always
// comes back with a usable (possibly empty) summary.
func (p *Poller) enrich(ctx context.Context, item model.Item) (summaryText, imageURL string) {
	imageURL = item.ImageURL

	if item.Link != "" {
		ext, err := p.deps.Scraper.Extract(item.Link)
		if err != nil {
			p.deps.Logger.Warn("article extraction unavailable, using feed excerpt", "link", item.Link, "err", err)
		} else {
			if ext.Image != "" {
				imageURL = ext.Image
			}
			s, err := p.deps.Summarizer.Summarize(ctx, ext.Text)
			if err != nil {
				p.deps.Logger.Warn("summarization failed, using feed excerpt", "link", item.Link, "err", err)
			} else if s != "" {
				return s, imageURL
			}
		}
	}

	return summary.FirstSentences(item.Summary, 3), imageURL
}
