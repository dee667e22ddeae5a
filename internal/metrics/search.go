package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sitesearch",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"scope", "status"},
	)

	SearchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sitesearch",
			Name:      "search_results",
			Help:      "Ranked results per search request before pagination",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 200, 400},
		},
		[]string{"scope"},
	)

	SearchExecuteDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "sitesearch",
			Name:      "search_execute_duration_seconds",
			Help:      "Full-text index query duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	MemberLookupFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sitesearch",
			Name:      "member_lookup_failures_total",
			Help:      "Member directory lookups that failed and were degraded to empty",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(SearchExecuteDuration)
	prometheus.MustRegister(MemberLookupFailuresTotal)
	searchMetricsRegistered = true
}
