package artwork

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/dhabedank/lumina/internal/core"
)

func testOptions(baseURL string) Options {
	return Options{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
		Limiter: rate.NewLimiter(rate.Inf, 1),
		Logger:  zerolog.Nop(),
	}
}

func TestEntity(t *testing.T) {
	tests := []struct {
		in   core.MediaType
		want string
	}{
		{core.MediaMovie, "movie"},
		{core.MediaSeries, "tvShow"},
		{"", "movie"},
	}
	for _, tt := range tests {
		if got := Entity(tt.in); got != tt.want {
			t.Errorf("Entity(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPosterURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://is1.mzstatic.com/a/100x100bb.jpg", "https://is1.mzstatic.com/a/600x600bb.jpg"},
		{"https://is1.mzstatic.com/a/200x200bb.jpg", "https://is1.mzstatic.com/a/200x200bb.jpg"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := PosterURL(tt.in); got != tt.want {
			t.Errorf("PosterURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOpenLibraryFindCover(t *testing.T) {
	var gotQuery, gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		gotLimit = r.URL.Query().Get("limit")
		fmt.Fprint(w, `{"numFound":3,"docs":[{"title":"Piranesi","cover_i":10521270}]}`)
	}))
	defer srv.Close()

	ol := NewOpenLibrary(testOptions(srv.URL), "")
	res := ol.FindCover(context.Background(), "Piranesi", "Susanna Clarke")

	require.True(t, res.Found)
	assert.Equal(t, "https://covers.openlibrary.org/b/id/10521270-L.jpg", res.URL)
	assert.Equal(t, "Piranesi Susanna Clarke", gotQuery)
	assert.Equal(t, "1", gotLimit)
}

func TestOpenLibraryMisses(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"no docs", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"numFound":0,"docs":[]}`)
		}},
		{"doc without cover", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"numFound":1,"docs":[{"title":"x"}]}`)
		}},
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"docs": [`)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			res := NewOpenLibrary(testOptions(srv.URL), "").FindCover(context.Background(), "x", "y")
			assert.False(t, res.Found)
			assert.Empty(t, res.URL)
		})
	}
}

func TestITunesFindPoster(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Severance", r.URL.Query().Get("term"))
		assert.Equal(t, "tvShow", r.URL.Query().Get("entity"))
		fmt.Fprint(w, `{"resultCount":1,"results":[{"trackName":"Severance","artworkUrl100":"https://is1.mzstatic.com/s/100x100bb.jpg"}]}`)
	}))
	defer srv.Close()

	res := NewITunes(testOptions(srv.URL)).FindPoster(context.Background(), "  Severance ", core.MediaSeries)
	require.True(t, res.Found)
	assert.Equal(t, "https://is1.mzstatic.com/s/600x600bb.jpg", res.URL)
}

func TestITunesNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"resultCount":0,"results":[]}`)
	}))
	defer srv.Close()

	res := NewITunes(testOptions(srv.URL)).FindPoster(context.Background(), "Unknown", core.MediaMovie)
	assert.Equal(t, Result{}, res)
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	ol := NewOpenLibrary(testOptions(srv.URL), "")
	for range 8 {
		assert.False(t, ol.FindCover(context.Background(), "x", "y").Found)
	}
	assert.Equal(t, int32(5), hits.Load(), "breaker should stop calls after five failures")
}

type stubCovers map[string]Result

func (s stubCovers) FindCover(_ context.Context, title, _ string) Result { return s[title] }

type stubPosters map[string]Result

func (s stubPosters) FindPoster(_ context.Context, title string, _ core.MediaType) Result {
	return s[title]
}

func bundle() core.DiscoveryResults {
	return core.DiscoveryResults{
		Books: []core.BookRecommendation{
			{Title: "Book 1"}, {Title: "Book 2"}, {Title: "Book 3"}, {Title: "Book 4"},
		},
		Movies: []core.MediaRecommendation{
			{Title: "Film 1", Type: core.MediaMovie}, {Title: "Show 1", Type: core.MediaSeries},
		},
	}
}

func TestEnrichPartialFailure(t *testing.T) {
	covers := stubCovers{
		"Book 2": found("c2"),
		"Book 3": found("c3"),
		"Book 4": found("c4"),
	}
	posters := stubPosters{"Show 1": found("p2")}

	in := bundle()
	out := NewEnricher(covers, posters).Enrich(context.Background(), in)

	assert.Empty(t, out.Books[0].CoverURL)
	assert.Equal(t, "c2", out.Books[1].CoverURL)
	assert.Equal(t, "c3", out.Books[2].CoverURL)
	assert.Equal(t, "c4", out.Books[3].CoverURL)
	assert.Empty(t, out.Movies[0].PosterURL)
	assert.Equal(t, "p2", out.Movies[1].PosterURL)

	assert.Empty(t, in.Books[1].CoverURL, "input must not be modified")
}

func TestEnrichNilFinders(t *testing.T) {
	out := NewEnricher(nil, nil).Enrich(context.Background(), bundle())
	assert.Equal(t, bundle(), out)
}
