package artwork

import (
	"context"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/dhabedank/lumina/internal/core"
)

const itunesBaseURL = "https://itunes.apple.com"

// Poster sizes in iTunes artwork URLs.
const (
	thumbSize  = "100x100bb.jpg"
	posterSize = "600x600bb.jpg"
)

// ITunes finds film and series posters through the iTunes Search API.
type ITunes struct {
	src     *source
	baseURL string
}

// NewITunes creates an iTunes client.
// Rate limited to 20 requests per minute as recommended by Apple.
func NewITunes(opts Options) *ITunes {
	base := opts.BaseURL
	if base == "" {
		base = itunesBaseURL
	}
	return &ITunes{
		// 20 requests per minute = 1 request per 3 seconds, burst of 5
		src:     newSource("itunes", opts, rate.NewLimiter(rate.Every(3*time.Second), 5)),
		baseURL: strings.TrimSuffix(base, "/"),
	}
}

// itunesResponse is the raw iTunes API response.
type itunesResponse struct {
	ResultCount int `json:"resultCount"`
	Results     []struct {
		TrackName     string `json:"trackName"`
		ArtworkURL100 string `json:"artworkUrl100"`
	} `json:"results"`
}

// Entity maps a media type to the iTunes search entity.
func Entity(t core.MediaType) string {
	if t == core.MediaSeries {
		return "tvShow"
	}
	return "movie"
}

// PosterURL upgrades a 100x100 thumbnail URL to the 600x600 rendition.
func PosterURL(artworkURL string) string {
	return strings.Replace(artworkURL, thumbSize, posterSize, 1)
}

// FindPoster searches for title within the media kind and returns the
// first match's artwork at poster resolution.
func (c *ITunes) FindPoster(ctx context.Context, title string, mediaType core.MediaType) Result {
	query := strings.TrimSpace(title)

	return c.src.lookup(ctx, query, func(ctx context.Context) (string, error) {
		params := url.Values{}
		params.Set("term", query)
		params.Set("entity", Entity(mediaType))
		params.Set("limit", "1")

		var resp itunesResponse
		if err := c.src.getJSON(ctx, c.baseURL+"/search?"+params.Encode(), &resp); err != nil {
			return "", err
		}
		if len(resp.Results) == 0 || resp.Results[0].ArtworkURL100 == "" {
			return "", errNoMatch
		}
		return PosterURL(resp.Results[0].ArtworkURL100), nil
	})
}
