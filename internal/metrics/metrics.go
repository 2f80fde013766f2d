// Package metrics holds the Prometheus collectors for recommendation and
// artwork calls. lumina is a short-lived CLI, so nothing is served: the
// registry is flushed to a node-exporter textfile when a path is configured.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is private to lumina so Go runtime collectors do not leak into the textfile.
var Registry = prometheus.NewRegistry()

var (
	LLMRequests = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "lumina_llm_requests_total",
			Help: "Recommendation requests by adapter and outcome.",
		},
		[]string{"adapter", "status"},
	)
	LLMDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lumina_llm_request_duration_seconds",
			Help:    "Recommendation request latency.",
			Buckets: []float64{1, 2.5, 5, 10, 20, 40, 80, 160},
		},
		[]string{"adapter"},
	)
	ArtworkLookups = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "lumina_artwork_lookups_total",
			Help: "Artwork lookups by source and outcome (found, missing, error, open).",
		},
		[]string{"source", "outcome"},
	)
	ArtworkDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lumina_artwork_lookup_duration_seconds",
			Help:    "Artwork lookup latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)
)

// WriteTextfile writes the registry to path. An empty path is a no-op.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
