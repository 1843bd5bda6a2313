package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and analysis Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portal",
			Name:      "search_requests_total",
			Help:      "Total number of search operations",
		},
		[]string{"op", "status"}, // op: search, suggest, tags
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "portal",
			Name:      "search_duration_seconds",
			Help:      "Search operation duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"op"},
	)

	SearchResultsTotal = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "portal",
			Name:      "search_results_total",
			Help:      "Number of matches per search before pagination",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)

	CacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portal",
			Name:      "result_cache_total",
			Help:      "Result cache hits and misses",
		},
		[]string{"op", "result"}, // result: hit / miss / error
	)

	SEOScore = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "portal",
			Name:      "seo_score",
			Help:      "Distribution of computed SEO scores",
			Buckets:   []float64{20, 40, 60, 70, 80, 90, 100},
		},
		[]string{"kind"}, // content / slug
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResultsTotal)
	prometheus.MustRegister(CacheTotal)
	prometheus.MustRegister(SEOScore)
	searchMetricsRegistered = true
}
