// Package metrics defines the Prometheus collectors exported by catalogd.
// Collectors are package-level so the middleware and services can update
// them without threading a registry through every constructor.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ruchirachamara/assessment/internal/version"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, normalized path,
	// and status code.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalogd_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks response time distribution by method and
	// normalized path. Status is unknown until the response, so it is not
	// a label here.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalogd_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// ItemsTotal reports the item count observed by the last stats
	// computation.
	ItemsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalogd_items_total",
			Help: "Number of items in the collection at the last stats computation",
		},
	)

	// StatsCacheHits counts stats requests served from the cache.
	StatsCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalogd_stats_cache_hits_total",
			Help: "Stats requests served from the cache",
		},
	)

	// StatsCacheMisses counts stats requests that recomputed.
	StatsCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalogd_stats_cache_misses_total",
			Help: "Stats requests that recomputed the aggregates",
		},
	)

	// StatsCacheInvalidations counts cache invalidations by source:
	// "manual" for the DELETE endpoint, "watch" for file change events.
	StatsCacheInvalidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalogd_stats_cache_invalidations_total",
			Help: "Stats cache invalidations by source",
		},
		[]string{"source"},
	)

	// BuildInfo is always 1 with the version as a label.
	BuildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalogd_info",
			Help: "Build information (always 1)",
		},
		[]string{"version"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(ItemsTotal)
	prometheus.MustRegister(StatsCacheHits)
	prometheus.MustRegister(StatsCacheMisses)
	prometheus.MustRegister(StatsCacheInvalidations)
	prometheus.MustRegister(BuildInfo)

	BuildInfo.WithLabelValues(version.Short()).Set(1)
}
