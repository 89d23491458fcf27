package telemetry

import (
	"context"
	"net/http"
	"time"

	"imagefy/internal/httpserve"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records generation outcomes. The zero-value pointer (nil) is a
// valid no-op recorder.
type Metrics struct {
	registry    *prometheus.Registry
	generations *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewMetrics registers imagefy collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "imagefy_generations_total",
				Help: "Prompt submissions by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "imagefy_generation_duration_seconds",
				Help:    "Latency of requests to the generation endpoint",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
			},
		),
	}
	m.registry.MustRegister(m.generations, m.duration)
	return m
}

// Registry exposes the underlying registry (tests, custom handlers).
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveOutcome counts a submission that ended with outcome.
func (m *Metrics) ObserveOutcome(outcome string) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(outcome).Inc()
}

// ObserveRequest records the latency of one outbound request.
func (m *Metrics) ObserveRequest(d time.Duration) {
	if m == nil {
		return
	}
	m.duration.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	return r
}

// Serve runs the metrics server on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	return httpserve.Run(ctx, addr, m.Handler(), 2*time.Second)
}
