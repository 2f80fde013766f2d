package core

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// LLMAdapter is the interface for LLM providers used by the recommender.
// This matches llm.Adapter but is defined here to avoid import cycles.
type LLMAdapter interface {
	// Name returns the adapter identifier for logging.
	Name() string

	// Generate sends prompts to the LLM and returns the parsed bundle.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (*DiscoveryResults, error)
}

// Recommender turns preferences into a raw (unenriched) discovery bundle.
type Recommender struct {
	adapter LLMAdapter
	logger  zerolog.Logger
}

// NewRecommender creates a recommender backed by adapter.
func NewRecommender(adapter LLMAdapter, logger zerolog.Logger) *Recommender {
	return &Recommender{
		adapter: adapter,
		logger:  logger.With().Str("component", "recommender").Logger(),
	}
}

// Generate asks the model for a bundle matching prefs that avoids every title
// in exclude. Every failure is reported as a *GenerationError.
func (r *Recommender) Generate(ctx context.Context, prefs Preferences, exclude []string) (*DiscoveryResults, error) {
	userPrompt := BuildUserPrompt(prefs, exclude)

	r.logger.Info().
		Str("adapter", r.adapter.Name()).
		Str("primary_genre", prefs.PrimaryGenre).
		Int("excluded", len(exclude)).
		Msg("requesting discovery bundle")

	results, err := r.adapter.Generate(ctx, SystemPrompt, userPrompt)
	if err != nil {
		r.logger.Error().Err(err).Str("adapter", r.adapter.Name()).Msg("recommendation call failed")
		return nil, &GenerationError{Adapter: r.adapter.Name(), Cause: err}
	}
	if results == nil {
		return nil, &GenerationError{Adapter: r.adapter.Name(), Cause: errors.New("no response from model")}
	}

	// Adapters validate too, but a custom adapter might not
	if err := results.Validate(); err != nil {
		r.logger.Warn().Err(err).Msg("model returned a non-conforming bundle")
		return nil, &GenerationError{Adapter: r.adapter.Name(), Cause: err}
	}

	return results, nil
}
