package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Enricher attaches optional artwork to a bundle. It never fails: items it
// cannot find artwork for keep an empty URL.
// This matches artwork.Enricher but is defined here to avoid import cycles.
type Enricher interface {
	Enrich(ctx context.Context, results DiscoveryResults) DiscoveryResults
}

// Pipeline runs one discovery: recommendation, then enrichment of every item.
type Pipeline struct {
	recommender *Recommender
	enricher    Enricher
	timeout     time.Duration
	logger      zerolog.Logger
}

// NewPipeline wires a recommender and an enricher together. A zero timeout
// leaves the recommendation call unbounded.
func NewPipeline(recommender *Recommender, enricher Enricher, timeout time.Duration, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		recommender: recommender,
		enricher:    enricher,
		timeout:     timeout,
		logger:      logger.With().Str("component", "pipeline").Logger(),
	}
}

// Run fetches a bundle for prefs and enriches it. Enrichment only starts once
// the raw recommendations exist and the bundle is returned after every
// lookup settles.
func (p *Pipeline) Run(ctx context.Context, prefs Preferences, exclude []string) (*DiscoveryResults, error) {
	start := time.Now()

	genCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	raw, err := p.recommender.Generate(genCtx, prefs, exclude)
	if err != nil {
		return nil, err
	}

	enriched := raw.Clone()
	if p.enricher != nil {
		enriched = p.enricher.Enrich(ctx, enriched)
	}

	p.logger.Info().
		Int("books", len(enriched.Books)).
		Int("movies", len(enriched.Movies)).
		Dur("elapsed", time.Since(start)).
		Msg("discovery bundle ready")

	return &enriched, nil
}
