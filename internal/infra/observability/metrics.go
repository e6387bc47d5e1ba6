package observability

import (
	"time"

	"github.com/boddenberg/boleto-decoder-go/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the decoder service.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	decodesTotal    *prometheus.CounterVec
	rendersTotal    *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "boleto_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		decodesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boleto_decodes_total",
				Help: "Total digitable-line decodes by status.",
			},
			[]string{"status"},
		),
		rendersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boleto_renders_total",
				Help: "Total barcode renders by output.",
			},
			[]string{"output"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boleto_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boleto_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrDecode increments the decode counter with a status label
// ("success" or "invalid").
func (m *Metrics) IncrDecode(status string) {
	m.decodesTotal.WithLabelValues(status).Inc()
}

// IncrRender increments the render counter for an output kind.
func (m *Metrics) IncrRender(output string) {
	m.rendersTotal.WithLabelValues(output).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// GetDecoderSnapshot returns a snapshot of decoder metrics suitable for
// the GET /v1/metrics/decoder endpoint.
func (m *Metrics) GetDecoderSnapshot() *domain.DecoderMetrics {
	// Prometheus counters expose cumulative values.
	ok := getCounterValue(m.decodesTotal, "success")
	invalid := getCounterValue(m.decodesTotal, "invalid")
	renders := getCounterValue(m.rendersTotal, "svg")
	hits := getCounterValue(m.cacheHits, "svg")
	misses := getCounterValue(m.cacheMisses, "svg")

	total := ok + invalid
	errorRate := float64(0)
	if total > 0 {
		errorRate = invalid / total
	}
	cacheHitRate := float64(0)
	if hits+misses > 0 {
		cacheHitRate = hits / (hits + misses)
	}

	return &domain.DecoderMetrics{
		TotalDecodes: int64(total),
		TotalRenders: int64(renders),
		ErrorRate:    errorRate,
		CacheHitRate: cacheHitRate,
		Period:       "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
