package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements FrameMetrics using Prometheus. All metrics
// are prefixed with "loom_" to avoid naming conflicts.
//
// Metrics exposed:
//   - loom_tick_duration_seconds: histogram of full-tick latency
//   - loom_layout_duration_seconds: histogram of layout+position latency
//   - loom_diff_changes: histogram of paint.Change count per tick
//   - loom_subscriber_fanout: histogram of subscribers touched per batch
//   - loom_cache_hits_total / loom_cache_misses_total: layout cache counters
type PrometheusMetrics struct {
	tickDuration     prometheus.Histogram
	layoutDuration   prometheus.Histogram
	diffChanges      prometheus.Histogram
	subscriberFanout prometheus.Histogram
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
}

// NewPrometheusMetrics registers Loom's frame metrics against reg and
// returns the collector. Registration failures (e.g. duplicate names)
// panic, matching the fail-fast startup behaviour of Prometheus-backed
// collectors elsewhere in the stack.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	tickDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "loom_tick_duration_seconds",
		Help:    "Duration of a full runtime tick (drain through paint).",
		Buckets: prometheus.DefBuckets,
	})
	layoutDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "loom_layout_duration_seconds",
		Help:    "Duration of the layout+position pass within a tick.",
		Buckets: prometheus.DefBuckets,
	})
	diffChanges := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "loom_diff_changes",
		Help:    "Number of paint.Change entries emitted by a tick's diff.",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 500},
	})
	subscriberFanout := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "loom_subscriber_fanout",
		Help:    "Number of distinct widget subscribers touched per store change batch.",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
	})
	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "loom_cache_hits_total",
		Help: "Total layout-cache short-circuits.",
	})
	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "loom_cache_misses_total",
		Help: "Total layout-cache recomputations.",
	})

	reg.MustRegister(tickDuration, layoutDuration, diffChanges, subscriberFanout, cacheHits, cacheMisses)

	return &PrometheusMetrics{
		tickDuration:     tickDuration,
		layoutDuration:   layoutDuration,
		diffChanges:      diffChanges,
		subscriberFanout: subscriberFanout,
		cacheHits:        cacheHits,
		cacheMisses:      cacheMisses,
	}
}

func (pm *PrometheusMetrics) RecordTickDuration(d time.Duration)   { pm.tickDuration.Observe(d.Seconds()) }
func (pm *PrometheusMetrics) RecordLayoutDuration(d time.Duration) { pm.layoutDuration.Observe(d.Seconds()) }
func (pm *PrometheusMetrics) RecordDiffSize(n int)                 { pm.diffChanges.Observe(float64(n)) }
func (pm *PrometheusMetrics) RecordSubscriberFanout(n int)         { pm.subscriberFanout.Observe(float64(n)) }
func (pm *PrometheusMetrics) RecordCacheHit()                      { pm.cacheHits.Inc() }
func (pm *PrometheusMetrics) RecordCacheMiss()                     { pm.cacheMisses.Inc() }
