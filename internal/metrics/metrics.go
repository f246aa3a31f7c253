package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the service's own Prometheus collectors. It owns a
// private prometheus.Registry so the /metrics output contains exactly what
// is registered here.
type Registry struct {
	reg *prometheus.Registry

	Queries      *prometheus.CounterVec
	QueryLatency prometheus.Histogram
	CacheHits    prometheus.Counter
	CacheMisses  prometheus.Counter
	SnapshotSize prometheus.Gauge
	Reloads      prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	queries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "salescope_queries_total",
		Help: "Analytics queries served, by operation.",
	}, []string{"operation"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "salescope_query_duration_seconds",
		Help:    "End-to-end query latency, cache hits included.",
		Buckets: prometheus.DefBuckets,
	})
	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "salescope_result_cache_hits_total",
	})
	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "salescope_result_cache_misses_total",
	})
	snapshotSize := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "salescope_snapshot_records",
		Help: "Record count of the snapshot currently being served.",
	})
	reloads := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "salescope_snapshot_reloads_total",
	})

	r.MustRegister(queries, latency, cacheHits, cacheMisses, snapshotSize, reloads)
	return &Registry{
		reg:          r,
		Queries:      queries,
		QueryLatency: latency,
		CacheHits:    cacheHits,
		CacheMisses:  cacheMisses,
		SnapshotSize: snapshotSize,
		Reloads:      reloads,
	}
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
