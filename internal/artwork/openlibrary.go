package artwork

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	openLibraryBaseURL = "https://openlibrary.org"
	coversBaseURL      = "https://covers.openlibrary.org"
)

// OpenLibrary finds book covers through the Open Library search API.
type OpenLibrary struct {
	src       *source
	baseURL   string
	coversURL string
}

// NewOpenLibrary creates an Open Library client. coversURL overrides the
// host used in generated image URLs; empty keeps covers.openlibrary.org.
func NewOpenLibrary(opts Options, coversURL string) *OpenLibrary {
	base := opts.BaseURL
	if base == "" {
		base = openLibraryBaseURL
	}
	if coversURL == "" {
		coversURL = coversBaseURL
	}
	return &OpenLibrary{
		// Open Library asks for polite clients; 5 rps with a small burst
		src:       newSource("openlibrary", opts, rate.NewLimiter(rate.Every(200*time.Millisecond), 4)),
		baseURL:   strings.TrimSuffix(base, "/"),
		coversURL: strings.TrimSuffix(coversURL, "/"),
	}
}

// openLibraryResponse is the subset of /search.json we read.
type openLibraryResponse struct {
	NumFound int `json:"numFound"`
	Docs     []struct {
		Title  string `json:"title"`
		CoverI int64  `json:"cover_i"`
	} `json:"docs"`
}

// CoverURL builds the large cover image URL for a cover identifier.
func (c *OpenLibrary) CoverURL(coverID int64) string {
	return fmt.Sprintf("%s/b/id/%d-L.jpg", c.coversURL, coverID)
}

// FindCover searches by title and author and returns the best match's cover.
func (c *OpenLibrary) FindCover(ctx context.Context, title, author string) Result {
	query := strings.TrimSpace(strings.TrimSpace(title) + " " + strings.TrimSpace(author))

	return c.src.lookup(ctx, query, func(ctx context.Context) (string, error) {
		params := url.Values{}
		params.Set("q", query)
		params.Set("limit", "1")

		var resp openLibraryResponse
		if err := c.src.getJSON(ctx, c.baseURL+"/search.json?"+params.Encode(), &resp); err != nil {
			return "", err
		}
		if len(resp.Docs) == 0 || resp.Docs[0].CoverI == 0 {
			return "", errNoMatch
		}
		return c.CoverURL(resp.Docs[0].CoverI), nil
	})
}
