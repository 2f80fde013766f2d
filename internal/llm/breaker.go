package llm

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/dhabedank/lumina/internal/core"
	"github.com/dhabedank/lumina/internal/metrics"
)

// ErrCircuitOpen is returned while the breaker refuses calls after repeated failures.
var ErrCircuitOpen = errors.New("recommendation service unavailable, try again shortly")

// GuardedAdapter wraps an Adapter with a circuit breaker and request metrics.
// It does not retry: a failed call is reported to the caller as-is.
type GuardedAdapter struct {
	inner   Adapter
	breaker *gobreaker.CircuitBreaker[*core.DiscoveryResults]
	logger  zerolog.Logger
}

// Guard wraps inner. Three consecutive failures open the breaker for a minute.
func Guard(inner Adapter, logger zerolog.Logger) *GuardedAdapter {
	g := &GuardedAdapter{
		inner:  inner,
		logger: logger.With().Str("adapter", inner.Name()).Logger(),
	}
	g.breaker = gobreaker.NewCircuitBreaker[*core.DiscoveryResults](gobreaker.Settings{
		Name:        "llm-" + inner.Name(),
		MaxRequests: 1,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			// Caller cancellation says nothing about the service
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			g.logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
	})
	return g
}

func (g *GuardedAdapter) Name() string      { return g.inner.Name() }
func (g *GuardedAdapter) IsAvailable() bool { return g.inner.IsAvailable() }

func (g *GuardedAdapter) Generate(ctx context.Context, systemPrompt, userPrompt string) (*core.DiscoveryResults, error) {
	start := time.Now()
	results, err := g.breaker.Execute(func() (*core.DiscoveryResults, error) {
		return g.inner.Generate(ctx, systemPrompt, userPrompt)
	})
	metrics.LLMDuration.WithLabelValues(g.inner.Name()).Observe(time.Since(start).Seconds())

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.LLMRequests.WithLabelValues(g.inner.Name(), "open").Inc()
		return nil, ErrCircuitOpen
	case err != nil:
		metrics.LLMRequests.WithLabelValues(g.inner.Name(), "error").Inc()
		return nil, err
	}

	metrics.LLMRequests.WithLabelValues(g.inner.Name(), "success").Inc()
	g.logger.Debug().Dur("elapsed", time.Since(start)).Msg("generation succeeded")
	return results, nil
}
