// Package model defines the data structures used in the feedPoster application, including Feed, Item, and PublishedItem. These structures represent configured feed sources, individual feed entries awaiting classification, and the records of everything already posted to the channel, respectively.
package model

// Feed is one row of the feed-list configuration.
type Feed struct {
	URL      string
	Category string
}

// Item is a single feed entry before classification. Published carries the
// feed-native date string as-is; it is display text, never parsed.
type Item struct {
	Link       string
	Title      string
	Published  string
	Categories []string
	Summary    string
	ImageURL   string
	Category   string
}

// PublishedItem is one record of the posted-items ledger. JSON keys follow
// the on-disk document so existing state files stay readable.
type PublishedItem struct {
	Link        string `json:"link"`
	Title       string `json:"title"`
	Summary     string `json:"summary,omitempty"`
	TopImage    string `json:"top_image,omitempty"`
	Published   string `json:"published,omitempty"`
	Category    string `json:"category,omitempty"`
	Fingerprint string `json:"fingerprint"`
	PostedAt    string `json:"posted_at"`
}
