package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/0x0BSoD/feedPoster/internal/model"
)

func TestClassify_EmptyStore(t *testing.T) {
	res := Classify(nil, "https://a.example/x", "Some Title", DefaultThreshold)

	assert.False(t, res.Duplicate)
	assert.Equal(t, ReasonNone, res.Reason)
}

func TestClassify_ExactLink(t *testing.T) {
	stored := []model.PublishedItem{
		{Link: "https://a.example/x", Title: "Senate Passes New Budget Bill After Long Debate"},
	}

	res := Classify(stored, "https://a.example/x", "A Wildly Different Headline Entirely", DefaultThreshold)

	assert.True(t, res.Duplicate)
	assert.Equal(t, ReasonExactLink, res.Reason)
}

func TestClassify_ExactLinkIsCaseSensitive(t *testing.T) {
	stored := []model.PublishedItem{
		{Link: "https://a.example/X", Title: "unrelated words entirely here"},
	}

	res := Classify(stored, "https://a.example/x", "different headline altogether", DefaultThreshold)

	assert.False(t, res.Duplicate)
}

func TestClassify_ExactLinkPrecedesFuzzy(t *testing.T) {
	// Identical title AND identical link: the cheap link pass must win.
	stored := []model.PublishedItem{
		{Link: "https://a.example/x", Title: "Senate Passes New Budget Bill After Long Debate"},
	}

	res := Classify(stored, "https://a.example/x", "Senate Passes New Budget Bill After Long Debate", DefaultThreshold)

	assert.True(t, res.Duplicate)
	assert.Equal(t, ReasonExactLink, res.Reason)
}

func TestClassify_FuzzyTitleReordered(t *testing.T) {
	stored := []model.PublishedItem{
		{Link: "https://a.example/x", Title: "Senate Passes New Budget Bill After Long Debate"},
	}

	// Same tokens, different order, different link: syndicated re-wording.
	res := Classify(stored, "https://b.example/y", "After Long Debate, Senate Passes New Budget Bill", DefaultThreshold)

	assert.True(t, res.Duplicate)
	assert.Equal(t, ReasonFuzzyTitle, res.Reason)
}

func TestClassify_FuzzyTitleEmptyCandidateLink(t *testing.T) {
	stored := []model.PublishedItem{
		{Link: "https://a.example/x", Title: "Senate Passes New Budget Bill After Long Debate"},
	}

	res := Classify(stored, "", "after long debate senate passes new budget bill", DefaultThreshold)

	assert.True(t, res.Duplicate)
	assert.Equal(t, ReasonFuzzyTitle, res.Reason)
}

func TestClassify_BelowThreshold(t *testing.T) {
	stored := []model.PublishedItem{
		{Link: "https://a.example/x", Title: "Senate Passes New Budget Bill After Long Debate"},
	}

	res := Classify(stored, "https://b.example/y", "City Council Approves Small Park Renovation", DefaultThreshold)

	assert.False(t, res.Duplicate)
	assert.Equal(t, ReasonNone, res.Reason)
}

func TestClassify_EmptyTitleShortCircuits(t *testing.T) {
	// A whitespace-only title must never reach the fuzzy pass, even against
	// a populated store.
	stored := []model.PublishedItem{
		{Link: "https://a.example/x", Title: "Senate Passes New Budget Bill After Long Debate"},
		{Link: "https://a.example/y", Title: "Another Stored Headline"},
	}

	res := Classify(stored, "", "   \t ", DefaultThreshold)

	assert.False(t, res.Duplicate)
	assert.Equal(t, ReasonNone, res.Reason)
}

func TestClassify_SkipsStoredItemsWithEmptyTitles(t *testing.T) {
	stored := []model.PublishedItem{
		{Link: "https://a.example/x", Title: "   "},
		{Link: "https://a.example/y", Title: ""},
	}

	res := Classify(stored, "https://b.example/z", "Fresh Headline About Something", DefaultThreshold)

	assert.False(t, res.Duplicate)
}

func TestClassify_Idempotent(t *testing.T) {
	stored := []model.PublishedItem{
		{Link: "https://a.example/x", Title: "Senate Passes New Budget Bill After Long Debate"},
		{Link: "https://a.example/y", Title: "City Council Approves Small Park Renovation"},
	}

	candidates := []struct{ link, title string }{
		{"https://a.example/x", "whatever"},
		{"", "Senate Passes New Budget Bill After Long Debate"},
		{"https://c.example/new", "Completely Unrelated Local Sports Result"},
	}

	for _, c := range candidates {
		first := Classify(stored, c.link, c.title, DefaultThreshold)
		second := Classify(stored, c.link, c.title, DefaultThreshold)
		assert.Equal(t, first, second, "classification must be stable for %q", c.title)
	}
}

func TestClassify_ThresholdIsInclusive(t *testing.T) {
	stored := []model.PublishedItem{
		{Title: "one two three"},
	}

	// Identical normalized titles score 100; a threshold of 100 must still
	// match.
	res := Classify(stored, "", "One  Two Three", 100)

	assert.True(t, res.Duplicate)
	assert.Equal(t, ReasonFuzzyTitle, res.Reason)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "senate passes bill", Normalize("  Senate \t Passes\n\nBill  "))
	assert.Equal(t, "", Normalize("   "))
	assert.Equal(t, "", Normalize(""))
}
