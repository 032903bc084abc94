// Package ledger persists the append-only record of every item ever posted
// to the channel. The ledger is loaded once at startup, grows in memory while
// a sweep runs, and is flushed back to disk at most once per sweep.
package ledger

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/0x0BSoD/feedPoster/internal/model"
)

// document is the on-disk shape: a single object with an ordered items list.
type document struct {
	Items []model.PublishedItem `json:"items"`
}

type Ledger struct {
	items  []model.PublishedItem
	dirty  bool
	logger *slog.Logger
}

// Load reads the ledger from path. It never fails the caller: a missing
// file, a read error, or undecodable content all degrade to an empty ledger,
// at worst re-posting a handful of old items once. Corruption is logged.
func Load(path string, logger *slog.Logger) *Ledger {
	l := &Ledger{logger: logger}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("failed to read ledger, starting empty", "path", path, "err", err)
		}
		return l
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		logger.Warn("failed to decode ledger, starting empty", "path", path, "err", err)
		return l
	}

	l.items = doc.Items
	return l
}

// Items returns the stored records in insertion order, oldest first.
func (l *Ledger) Items() []model.PublishedItem {
	return l.items
}

func (l *Ledger) Len() int {
	return len(l.items)
}

// Dirty reports whether anything was appended since Load.
func (l *Ledger) Dirty() bool {
	return l.dirty
}

// Append records a successfully delivered item. No duplicate check happens
// here: callers must have already classified the item as new.
func (l *Ledger) Append(item model.Item, summary, topImage string) {
	l.items = append(l.items, model.PublishedItem{
		Link:        item.Link,
		Title:       item.Title,
		Summary:     summary,
		TopImage:    topImage,
		Published:   item.Published,
		Category:    item.Category,
		Fingerprint: Fingerprint(item.Link, item.Title),
		PostedAt:    time.Now().UTC().Format(time.RFC3339),
	})
	l.dirty = true
}

// Persist writes the full ledger to path as indented JSON. The write goes to
// a temp file in the same directory followed by a rename, so a concurrent
// reader never observes a partially written document.
func (l *Ledger) Persist(path string) error {
	raw, err := json.MarshalIndent(document{Items: l.items}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace ledger: %w", err)
	}

	l.dirty = false
	return nil
}

// Fingerprint derives the audit hash stored with every record. It is an
// opaque key: lookups go through link and title directly, never through it.
func Fingerprint(link, title string) string {
	return fmt.Sprintf("%x", sha1.Sum([]byte(link+"||"+title)))
}
