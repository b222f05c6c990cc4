package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search pipeline Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total search pipeline runs",
		},
		[]string{"operation", "status"},
	)

	SearchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of businesses returned per search",
			Buckets:   []float64{0, 1, 2, 4, 6, 12, 25, 50, 100},
		},
		[]string{"operation"},
	)

	BackendErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_errors_total",
			Help:      "Storage fetch failures seen by the search pipeline",
		},
		[]string{"operation"},
	)

	LocationFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "location_fallbacks_total",
			Help:      "Searches that ranked without coordinates after a failed caller lookup",
		},
	)

	LocationCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "location_cache_total",
			Help:      "Location cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	GuardStateChangesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guard_state_changes_total",
			Help:      "Circuit breaker transitions of the storage fetch guard",
		},
		[]string{"from", "to"},
	)

	searchOnce sync.Once
)

// RegisterSearchMetrics registers search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	searchOnce.Do(func() {
		prometheus.MustRegister(
			SearchesTotal,
			SearchResults,
			BackendErrorsTotal,
			LocationFallbacksTotal,
			LocationCacheTotal,
			GuardStateChangesTotal,
		)
	})
}

// SearchObserver feeds search outcomes into the package collectors.
type SearchObserver struct{}

// SearchCompleted records one pipeline run.
func (SearchObserver) SearchCompleted(operation string, results int, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	SearchesTotal.WithLabelValues(operation, status).Inc()
	if err == nil {
		SearchResults.WithLabelValues(operation).Observe(float64(results))
	}
}

// BackendError records a failed storage fetch.
func (SearchObserver) BackendError(operation string) {
	BackendErrorsTotal.WithLabelValues(operation).Inc()
}

// LocationFallback records a search that continued without coordinates.
func (SearchObserver) LocationFallback() {
	LocationFallbacksTotal.Inc()
}

// GuardStateChanged records a breaker transition.
func GuardStateChanged(from, to string) {
	GuardStateChangesTotal.WithLabelValues(from, to).Inc()
}
