package scrape

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleFixture = `<!DOCTYPE html>
<html>
<head><title>Council Approves Transport Plan</title></head>
<body>
<article>
<h1>Council Approves Transport Plan</h1>
<p>The city council voted on Monday to approve a sweeping new public transport plan that has been under discussion for more than two years, officials confirmed after the session.</p>
<p>The plan adds a dozen new bus routes across the city center and the northern districts, with dedicated lanes planned along the three busiest corridors according to the published documents.</p>
<p>Officials said the new routes should reduce commute times for thousands of residents who currently rely on overcrowded connections through the central interchange every morning.</p>
<p>Funding for the program comes from a regional infrastructure grant approved last year, supplemented by a modest increase in parking fees within the inner ring.</p>
<p>Construction of the dedicated lanes is expected to begin in the spring, with the first of the new routes entering service before the end of the year if the schedule holds.</p>
</article>
</body>
</html>`

func TestExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(articleFixture))
	}))
	defer srv.Close()

	s := New(5 * time.Second)

	ext, err := s.Extract(srv.URL + "/story")

	require.NoError(t, err)
	assert.Contains(t, ext.Text, "public transport plan")
	assert.NotContains(t, ext.Text, "<p>")
}

func TestExtract_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := New(5 * time.Second)

	_, err := s.Extract(srv.URL + "/gone")

	assert.Error(t, err)
}

func TestCleanupText(t *testing.T) {
	got := cleanupText("a\n\n\n\nb\n\nc  ")

	assert.Equal(t, "a\nb\n\nc", got)
	assert.False(t, strings.Contains(got, "\n\n\n"))
}
