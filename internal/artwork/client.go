// Package artwork looks up book covers (Open Library) and film/series
// posters (iTunes Search) for discovery bundles.
//
// Lookups are best effort. Every failure is logged and reported as a
// Result with Found == false; callers never see an error.
package artwork

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/dhabedank/lumina/internal/metrics"
)

// Result is the outcome of one lookup. The zero value means "no artwork".
type Result struct {
	URL   string
	Found bool
}

func found(url string) Result { return Result{URL: url, Found: true} }

// errNoMatch marks a well-formed response without usable artwork.
var errNoMatch = errors.New("no matching artwork")

// Options configures a lookup client.
type Options struct {
	// BaseURL overrides the service endpoint (tests point it at httptest).
	BaseURL string

	// Timeout bounds a single HTTP request. Default: 10s.
	Timeout time.Duration

	// Limiter throttles outgoing requests. Nil uses the source default.
	Limiter *rate.Limiter

	// HTTPClient replaces the default client. Timeout is ignored when set.
	HTTPClient *http.Client

	Logger zerolog.Logger
}

// source is the plumbing shared by the Open Library and iTunes clients.
type source struct {
	name        string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	breaker     *gobreaker.CircuitBreaker[struct{}]
	logger      zerolog.Logger
}

func newSource(name string, opts Options, defaultLimit *rate.Limiter) *source {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limiter := opts.Limiter
	if limiter == nil {
		limiter = defaultLimit
	}

	s := &source{
		name:        name,
		httpClient:  httpClient,
		rateLimiter: limiter,
		logger:      opts.Logger.With().Str("source", name).Logger(),
	}
	s.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "artwork-" + name,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			// A miss is a healthy answer
			return err == nil || errors.Is(err, errNoMatch) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.logger.Warn().Str("from", from.String()).Str("to", to.String()).Msg("artwork breaker state change")
		},
	})
	return s
}

// lookup runs fn through the breaker and converts the outcome to a Result.
// fn returns the artwork URL, errNoMatch, or a transport/decode error.
func (s *source) lookup(ctx context.Context, query string, fn func(ctx context.Context) (string, error)) Result {
	start := time.Now()
	var artURL string
	_, err := s.breaker.Execute(func() (struct{}, error) {
		var err error
		artURL, err = fn(ctx)
		return struct{}{}, err
	})
	metrics.ArtworkDuration.WithLabelValues(s.name).Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.ArtworkLookups.WithLabelValues(s.name, "found").Inc()
		return found(artURL)
	case errors.Is(err, errNoMatch):
		metrics.ArtworkLookups.WithLabelValues(s.name, "missing").Inc()
		s.logger.Debug().Str("query", query).Msg("no artwork match")
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.ArtworkLookups.WithLabelValues(s.name, "open").Inc()
		s.logger.Debug().Str("query", query).Msg("artwork lookup skipped, breaker open")
	default:
		metrics.ArtworkLookups.WithLabelValues(s.name, "error").Inc()
		s.logger.Warn().Err(err).Str("query", query).Msg("artwork lookup failed")
	}
	return Result{}
}

// getJSON performs a rate-limited GET and decodes the JSON body into out.
func (s *source) getJSON(ctx context.Context, url string, out any) error {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", s.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s search failed: status %d", s.name, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parse %s response: %w", s.name, err)
	}
	return nil
}
