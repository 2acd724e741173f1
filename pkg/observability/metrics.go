package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sketchgrid"

// Metrics records hook events as Prometheus series.
type Metrics struct {
	toggles        *prometheus.CounterVec
	sketches       prometheus.Gauge
	renderDuration *prometheus.HistogramVec
	renderErrors   *prometheus.CounterVec
	cacheLookups   *prometheus.CounterVec
	sockets        prometheus.Gauge
}

// NewMetrics creates the series and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "toggles_total",
			Help:      "Edge toggles by layer and result.",
		}, []string{"layer", "result"}),
		sketches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sketches",
			Help:      "Live sketches.",
		}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering artifacts.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"format"}),
		renderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_errors_total",
			Help:      "Failed renders by format.",
		}, []string{"format"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Artifact cache lookups by format and result.",
		}, []string{"format", "result"}),
		sockets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websockets",
			Help:      "Open websocket connections.",
		}),
	}
	reg.MustRegister(m.toggles, m.sketches, m.renderDuration, m.renderErrors, m.cacheLookups, m.sockets)
	return m
}

func (m *Metrics) OnToggle(_ context.Context, layer string, err error) {
	result := "ok"
	if err != nil {
		result, layer = "invalid", "none"
	}
	m.toggles.WithLabelValues(layer, result).Inc()
}

func (m *Metrics) OnSketches(_ context.Context, n int) { m.sketches.Set(float64(n)) }

func (m *Metrics) OnRender(_ context.Context, format string, d time.Duration, err error) {
	if err != nil {
		m.renderErrors.WithLabelValues(format).Inc()
		return
	}
	m.renderDuration.WithLabelValues(format).Observe(d.Seconds())
}

func (m *Metrics) OnCacheHit(_ context.Context, format string) {
	m.cacheLookups.WithLabelValues(format, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, format string) {
	m.cacheLookups.WithLabelValues(format, "miss").Inc()
}

func (m *Metrics) OnSocket(_ context.Context, delta int) { m.sockets.Add(float64(delta)) }

var _ Hooks = (*Metrics)(nil)
