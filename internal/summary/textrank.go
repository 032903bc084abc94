// Package summary produces the short text posted under each headline. The
// default implementation is extractive (TextRank over the article body);
// OpenAI-compatible and Ollama backends can be selected instead.
package summary

import (
	"context"
	"strings"

	textrank "github.com/DavidBelicza/TextRank/v2"
)

const (
	// Bodies shorter than this are not worth ranking.
	minRankableChars = 30
	// TextRank output shorter than this is treated as degenerate and the
	// leading sentences are used instead.
	minSummaryChars = 60
)

// TextRankSummarizer picks the highest-weighted sentences of the input text.
// It is fully local: no network, no credentials.
type TextRankSummarizer struct {
	sentences int
}

func NewTextRankSummarizer(sentences int) *TextRankSummarizer {
	if sentences <= 0 {
		sentences = 3
	}
	return &TextRankSummarizer{sentences: sentences}
}

func (t *TextRankSummarizer) Summarize(_ context.Context, text string) (string, error) {
	if len(strings.TrimSpace(text)) < minRankableChars {
		return FirstSentences(text, 2), nil
	}

	tr := textrank.NewTextRank()
	tr.Populate(text, textrank.NewDefaultLanguage(), textrank.NewDefaultRule())
	tr.Ranking(textrank.NewDefaultAlgorithm())

	ranked := textrank.FindSentencesByRelationWeight(tr, t.sentences)
	parts := make([]string, 0, len(ranked))
	for _, sentence := range ranked {
		if s := strings.TrimSpace(sentence.Value); s != "" {
			parts = append(parts, s)
		}
	}

	out := strings.Join(parts, " ")
	if len(out) < minSummaryChars {
		return FirstSentences(text, 2), nil
	}
	return out, nil
}

// FirstSentences returns the first n sentences of text, split naively on
// periods. It is the fallback for bodies too short or too messy to rank.
func FirstSentences(text string, n int) string {
	if text == "" {
		return ""
	}

	var parts []string
	for _, part := range strings.Split(strings.ReplaceAll(text, "\r", " "), ".") {
		if p := strings.TrimSpace(part); p != "" {
			parts = append(parts, p)
		}
		if len(parts) == n {
			break
		}
	}
	if len(parts) == 0 {
		return ""
	}

	return strings.Join(parts, ". ") + "."
}
