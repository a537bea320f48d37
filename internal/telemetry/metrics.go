// Metrics registration and collection
//
// Prometheus metrics setup:
// - Counter definitions
// - Histogram definitions
// - Gauge definitions
// - Label schemas
// - Metrics initialization

package telemetry

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics defines the interface for metrics collection
type Metrics interface {
	// Counter operations
	IncCounter(name string)
	IncCounterBy(name string, value int)

	// Gauge operations
	SetGauge(name string, value float64)
	IncGauge(name string)
	DecGauge(name string)

	// Histogram operations
	ObserveHistogram(name string, value float64)

	// Duration operations
	ObserveRequestDuration(path string, duration time.Duration)
	ObserveOriginDuration(host string, duration time.Duration)
}

// PromMetrics is the Metrics implementation backed by Prometheus client
// vectors. Label-less ad-hoc names (IncCounter, SetGauge, ObserveHistogram)
// are accumulated under a "name" label on one shared vector per kind, since
// Prometheus requires a metric's label schema to be declared up front and
// the Metrics interface hands callers a free-form name instead.
type PromMetrics struct {
	registry *prometheus.Registry

	counters   *prometheus.CounterVec
	gauges     *prometheus.GaugeVec
	histograms *prometheus.HistogramVec

	requestDuration *prometheus.HistogramVec
	originDuration  *prometheus.HistogramVec

	mu sync.Mutex
}

// NewMetrics creates a new Prometheus-backed metrics collector registered
// under namespace.
func NewMetrics(namespace string) *PromMetrics {
	reg := prometheus.NewRegistry()

	m := &PromMetrics{
		registry: reg,
		counters: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Count of named application events.",
		}, []string{"name"}),
		gauges: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "gauge",
			Help:      "Named application gauges.",
		}, []string{"name"}),
		histograms: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "observations",
			Help:      "Named application histogram observations.",
		}, []string{"name"}),
		requestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Proxy request duration in seconds, by path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
		originDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "origin_duration_seconds",
			Help:      "Origin fetch duration in seconds, by host.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"host"}),
	}

	reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	return m
}

// Handler returns the http.Handler serving this collector's registry in
// the Prometheus exposition format, for mounting at /metrics.
func (m *PromMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *PromMetrics) IncCounter(name string) { m.IncCounterBy(name, 1) }

func (m *PromMetrics) IncCounterBy(name string, value int) {
	m.counters.WithLabelValues(name).Add(float64(value))
}

func (m *PromMetrics) SetGauge(name string, value float64) {
	m.gauges.WithLabelValues(name).Set(value)
}

func (m *PromMetrics) IncGauge(name string) { m.gauges.WithLabelValues(name).Inc() }
func (m *PromMetrics) DecGauge(name string) { m.gauges.WithLabelValues(name).Dec() }

func (m *PromMetrics) ObserveHistogram(name string, value float64) {
	m.histograms.WithLabelValues(name).Observe(value)
}

func (m *PromMetrics) ObserveRequestDuration(path string, duration time.Duration) {
	m.requestDuration.WithLabelValues(path).Observe(duration.Seconds())
}

func (m *PromMetrics) ObserveOriginDuration(host string, duration time.Duration) {
	m.originDuration.WithLabelValues(host).Observe(duration.Seconds())
}
