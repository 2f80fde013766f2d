package core_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/dhabedank/lumina/internal/artwork"
	"github.com/dhabedank/lumina/internal/core"
)

type fakeAdapter struct {
	results *core.DiscoveryResults
	err     error

	system, user string
	calls        int
}

func (f *fakeAdapter) Name() string { return "fake" }

func (f *fakeAdapter) Generate(_ context.Context, systemPrompt, userPrompt string) (*core.DiscoveryResults, error) {
	f.calls++
	f.system, f.user = systemPrompt, userPrompt
	return f.results, f.err
}

func fantasyBundle() *core.DiscoveryResults {
	r := &core.DiscoveryResults{}
	for i := 1; i <= 4; i++ {
		r.Books = append(r.Books, core.BookRecommendation{
			Title: fmt.Sprintf("Book %d", i), Author: "Author",
			Genres: []string{"Fantasy"}, Description: "d", Reason: "r",
		})
	}
	r.Movies = []core.MediaRecommendation{
		{Title: "Spirited Away", Year: "2001", Type: core.MediaMovie, Genres: []string{"Animation"}, Description: "d", Reason: "r"},
		{Title: "Arcane", Year: "2021", Type: core.MediaSeries, Genres: []string{"Fantasy"}, Description: "d", Reason: "r"},
	}
	return r
}

// artworkServer serves both lookup APIs. Book 1 has no cover on record.
func artworkServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/search.json":
			if strings.HasPrefix(r.URL.Query().Get("q"), "Book 1") {
				fmt.Fprint(w, `{"numFound":0,"docs":[]}`)
				return
			}
			fmt.Fprint(w, `{"numFound":1,"docs":[{"title":"x","cover_i":42}]}`)
		case "/search":
			fmt.Fprintf(w, `{"resultCount":1,"results":[{"trackName":"x","artworkUrl100":"https://img.example/%s/100x100bb.jpg"}]}`,
				r.URL.Query().Get("entity"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newEnricher(baseURL string) *artwork.Enricher {
	opts := artwork.Options{BaseURL: baseURL, Limiter: rate.NewLimiter(rate.Inf, 1), Logger: zerolog.Nop()}
	return artwork.NewEnricher(
		artwork.NewOpenLibrary(opts, "https://covers.example"),
		artwork.NewITunes(opts),
	)
}

func TestPipelineExampleScenario(t *testing.T) {
	srv := artworkServer(t)
	adapter := &fakeAdapter{results: fantasyBundle()}
	pipeline := core.NewPipeline(core.NewRecommender(adapter, zerolog.Nop()), newEnricher(srv.URL), time.Minute, zerolog.Nop())

	prefs := core.DefaultPreferences()
	prefs.PrimaryGenre = "Fantasy"

	results, err := pipeline.Run(context.Background(), prefs, core.ExcludedTitles(nil))
	require.NoError(t, err)
	require.Len(t, results.Books, 4)
	require.Len(t, results.Movies, 2)

	assert.Equal(t, 1, adapter.calls)
	assert.Equal(t, core.SystemPrompt, adapter.system)
	assert.Contains(t, adapter.user, "Favorite Genres: Fantasy, ")
	assert.Contains(t, adapter.user, "Preferred Mood: Thought-provoking")
	assert.Contains(t, adapter.user, "Total books read: 11-50")

	assert.Empty(t, results.Books[0].CoverURL, "book 1 has no cover")
	for _, b := range results.Books[1:] {
		assert.Equal(t, "https://covers.example/b/id/42-L.jpg", b.CoverURL)
	}
	assert.Equal(t, "https://img.example/movie/600x600bb.jpg", results.Movies[0].PosterURL)
	assert.Equal(t, "https://img.example/tvShow/600x600bb.jpg", results.Movies[1].PosterURL)

	// The adapter's bundle is not written through
	assert.Empty(t, adapter.results.Books[1].CoverURL)
}

func TestPipelineArtworkDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	adapter := &fakeAdapter{results: fantasyBundle()}
	pipeline := core.NewPipeline(core.NewRecommender(adapter, zerolog.Nop()), newEnricher(srv.URL), 0, zerolog.Nop())

	prefs := core.DefaultPreferences()
	prefs.PrimaryGenre = "Fantasy"
	results, err := pipeline.Run(context.Background(), prefs, nil)

	require.NoError(t, err)
	require.Len(t, results.Books, 4)
	for _, b := range results.Books {
		assert.Empty(t, b.CoverURL)
		assert.NotEmpty(t, b.Title)
	}
	for _, m := range results.Movies {
		assert.Empty(t, m.PosterURL)
	}
}

func TestRecommenderFailures(t *testing.T) {
	short := fantasyBundle()
	short.Books = short.Books[:3]

	tests := []struct {
		name      string
		adapter   *fakeAdapter
		wantValid bool
	}{
		{"adapter error", &fakeAdapter{err: errors.New("connection refused")}, false},
		{"no response", &fakeAdapter{}, false},
		{"wrong shape", &fakeAdapter{results: short}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := core.NewPipeline(core.NewRecommender(tt.adapter, zerolog.Nop()), nil, 0, zerolog.Nop())
			results, err := pipeline.Run(context.Background(), core.DefaultPreferences(), []string{"Dune"})

			assert.Nil(t, results)
			require.Error(t, err)
			assert.True(t, core.IsGenerationError(err))

			var verr *core.ValidationError
			assert.Equal(t, tt.wantValid, errors.As(err, &verr))
		})
	}
}

func TestRecommenderPassesExclusions(t *testing.T) {
	adapter := &fakeAdapter{results: fantasyBundle()}
	rec := core.NewRecommender(adapter, zerolog.Nop())

	_, err := rec.Generate(context.Background(), core.DefaultPreferences(), []string{"Dune", "Piranesi"})
	require.NoError(t, err)
	assert.Contains(t, adapter.user, "(DO NOT REPEAT): Dune, Piranesi")
}
