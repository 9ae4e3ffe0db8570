package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_requests_total",
			Help:      "Search requests by outcome",
		},
		[]string{"outcome"}, // empty, no_results, results, error
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_duration_seconds",
			Help:      "Query and render time in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
		[]string{"outcome"},
	)

	DanglingReferencesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "dangling_references_total",
			Help:      "Search hits whose reference is missing from the corpus",
		},
	)

	IndexedDocuments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "indexed_documents",
			Help:      "Documents held by the search index",
		},
	)
)

var registerSearch sync.Once

// RegisterSearchMetrics registers search metrics with the default registry.
// Safe to call more than once.
func RegisterSearchMetrics() {
	registerSearch.Do(func() {
		prometheus.MustRegister(SearchRequestsTotal, SearchDuration, DanglingReferencesTotal, IndexedDocuments)
	})
}

// SearchObserver feeds search outcomes into the package metrics.
type SearchObserver struct{}

// ObserveSearch counts one search and records its duration.
func (SearchObserver) ObserveSearch(outcome string, elapsed time.Duration) {
	SearchRequestsTotal.WithLabelValues(outcome).Inc()
	SearchDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// ObserveDanglingReference counts one unresolved hit.
func (SearchObserver) ObserveDanglingReference(_ int) {
	DanglingReferencesTotal.Inc()
}
