package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reco_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reco_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	IntentMatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reco_chat_intents_total",
			Help: "Chat messages by classified intent category",
		},
		[]string{"category"},
	)

	RecommendationsServed = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reco_items_served",
			Help:    "Number of items returned per recommendation request",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 8, 10, 20},
		},
		[]string{"endpoint"},
	)

	StoreBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reco_store_breaker_state",
			Help: "Store circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reco_cache_lookups_total",
			Help: "Read cache lookups by key and result",
		},
		[]string{"key", "result"},
	)
)
