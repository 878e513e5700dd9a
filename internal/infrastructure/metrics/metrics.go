package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ========================================
// HTTP
// ========================================

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// ========================================
// METADATA PROVIDER (TMDB)
// ========================================

var (
	// ProviderRequestsTotal đếm mỗi HTTP attempt tới provider (kể cả retry)
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metadata_provider_requests_total",
			Help: "Requests sent to the movie metadata provider",
		},
		[]string{"endpoint", "outcome"},
	)

	ProviderRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metadata_provider_retries_total",
			Help: "Retried provider requests",
		},
		[]string{"endpoint"},
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "metadata_provider_request_duration_seconds",
			Help:    "Provider request latency per attempt",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// CircuitBreakerState 0=closed, 1=half-open, 2=open
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// ========================================
// MOVIE STORE
// ========================================

var (
	MovieCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movie_cache_hits_total",
			Help: "Movie lookups served from Redis",
		},
	)

	MovieCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movie_cache_misses_total",
			Help: "Movie lookups that fell through to PostgreSQL",
		},
	)

	// MovieResolutions outcome: reused, created, race_lost, provider_error
	MovieResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movie_resolutions_total",
			Help: "Outcomes of resolving a movie by external id",
		},
		[]string{"outcome"},
	)
)

// ========================================
// DATABASE
// ========================================

// DBPoolConnections state: acquired, idle, total
var DBPoolConnections = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "db_pool_connections",
		Help: "PostgreSQL pool connections by state",
	},
	[]string{"state"},
)
