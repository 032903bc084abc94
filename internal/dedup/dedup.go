// Package dedup decides whether a candidate feed entry has already been
// posted. The check runs before any enrichment or delivery is attempted: an
// exact-link pass over the ledger first, then a fuzzy token-set comparison of
// normalized titles, which catches the same story republished under a
// re-worded headline and a different URL.
package dedup

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/0x0BSoD/feedPoster/internal/model"
)

// DefaultThreshold is the token-set score (0-100) at or above which two
// titles count as the same story. Higher is stricter.
const DefaultThreshold = 88

type Reason string

const (
	ReasonNone       Reason = ""
	ReasonExactLink  Reason = "exact_link"
	ReasonFuzzyTitle Reason = "fuzzy_title"
)

// Result is the classification outcome for one candidate.
type Result struct {
	Duplicate bool
	Reason    Reason
}

// Classify reports whether the candidate identified by link and title
// duplicates any stored item. Links must match byte-for-byte; titles are
// normalized and compared with a token-set ratio against threshold. Both
// passes walk the ledger oldest-first and stop at the first match: there is
// no best-match search, only first-above-threshold.
func Classify(items []model.PublishedItem, link, title string, threshold int) Result {
	if link != "" {
		for _, item := range items {
			if item.Link != "" && item.Link == link {
				return Result{Duplicate: true, Reason: ReasonExactLink}
			}
		}
	}

	titleNorm := Normalize(title)
	if titleNorm == "" {
		return Result{}
	}

	for _, item := range items {
		stored := Normalize(item.Title)
		if stored == "" {
			continue
		}
		if fuzzy.TokenSetRatio(titleNorm, stored) >= threshold {
			return Result{Duplicate: true, Reason: ReasonFuzzyTitle}
		}
	}

	return Result{}
}

// Normalize lowercases, trims, and collapses internal whitespace so that
// titles differing only in spacing or case compare equal.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
