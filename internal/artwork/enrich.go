package artwork

import (
	"context"
	"sync"

	"github.com/dhabedank/lumina/internal/core"
)

// CoverFinder looks up a book cover.
type CoverFinder interface {
	FindCover(ctx context.Context, title, author string) Result
}

// PosterFinder looks up a film or series poster.
type PosterFinder interface {
	FindPoster(ctx context.Context, title string, mediaType core.MediaType) Result
}

// Enricher attaches artwork to every item of a bundle concurrently.
type Enricher struct {
	covers  CoverFinder
	posters PosterFinder
}

// NewEnricher creates an enricher. Either finder may be nil to skip that kind.
func NewEnricher(covers CoverFinder, posters PosterFinder) *Enricher {
	return &Enricher{covers: covers, posters: posters}
}

// Enrich returns a copy of results with CoverURL and PosterURL filled where
// artwork was found. All lookups run at once and Enrich returns after every
// one of them has settled; a failed lookup only leaves its own field empty.
func (e *Enricher) Enrich(ctx context.Context, results core.DiscoveryResults) core.DiscoveryResults {
	out := results.Clone()

	var wg sync.WaitGroup

	if e.covers != nil {
		for i := range out.Books {
			book := &out.Books[i]
			wg.Add(1)
			go func() {
				defer wg.Done()
				if r := e.covers.FindCover(ctx, book.Title, book.Author); r.Found {
					book.CoverURL = r.URL
				}
			}()
		}
	}

	if e.posters != nil {
		for i := range out.Movies {
			media := &out.Movies[i]
			wg.Add(1)
			go func() {
				defer wg.Done()
				if r := e.posters.FindPoster(ctx, media.Title, media.Type); r.Found {
					media.PosterURL = r.URL
				}
			}()
		}
	}

	wg.Wait()
	return out
}
