// Package metrics exposes Prometheus collectors for rendering activity.
//
// Metrics:
//   - domcolor_renders_total: renders by result and format
//   - domcolor_render_duration_seconds: wall time per render, by format
//   - domcolor_pixels_total: pixels produced by successful renders
//   - domcolor_renders_in_flight: renders currently running
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"domcolor/pkg/domcolor"
)

// Render results used as the "result" label.
const (
	ResultOK         = "ok"
	ResultBadInput   = "bad_input"
	ResultCanceled   = "canceled"
	ResultError      = "error"
	defaultNamespace = "domcolor"
)

// Collector owns the render metrics and the registry they are exposed from.
type Collector struct {
	registry *prometheus.Registry

	rendersTotal   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	pixelsTotal    prometheus.Counter
	inFlight       prometheus.Gauge
}

// NewCollector registers the render metrics with registry, or with a fresh
// registry when nil.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	c := &Collector{
		registry: registry,
		rendersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: defaultNamespace,
				Name:      "renders_total",
				Help:      "Total number of render requests by result and format",
			},
			[]string{"result", "format"},
		),
		renderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: defaultNamespace,
				Name:      "render_duration_seconds",
				Help:      "Time spent parsing, sampling and encoding one image",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"format"},
		),
		pixelsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: defaultNamespace,
				Name:      "pixels_total",
				Help:      "Total number of pixels produced by successful renders",
			},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: defaultNamespace,
				Name:      "renders_in_flight",
				Help:      "Number of renders currently running",
			},
		),
	}
	registry.MustRegister(c.rendersTotal, c.renderDuration, c.pixelsTotal, c.inFlight)
	return c
}

// Registry returns the registry the collectors are registered with.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Start marks a render as running and returns a function that records its
// outcome. Typical use:
//
//	done := collector.Start()
//	data, err := domcolor.RenderContext(...)
//	done(format, w*h, err)
func (c *Collector) Start() func(format domcolor.Format, pixels int, err error) {
	c.inFlight.Inc()
	start := time.Now()
	return func(format domcolor.Format, pixels int, err error) {
		c.inFlight.Dec()
		c.RecordRender(format, time.Since(start), pixels, err)
	}
}

// RecordRender records one finished render.
func (c *Collector) RecordRender(format domcolor.Format, duration time.Duration, pixels int, err error) {
	result := Result(err)
	c.rendersTotal.WithLabelValues(result, string(format)).Inc()
	c.renderDuration.WithLabelValues(string(format)).Observe(duration.Seconds())
	if result == ResultOK {
		c.pixelsTotal.Add(float64(pixels))
	}
}

// RecordRejected counts a request refused before rendering started.
func (c *Collector) RecordRejected(format domcolor.Format) {
	label := string(format)
	if label == "" {
		label = "unknown"
	}
	c.rendersTotal.WithLabelValues(ResultBadInput, label).Inc()
}

// Result classifies a render error into a label value.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case domcolor.IsInputError(err):
		return ResultBadInput
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ResultCanceled
	}
	return ResultError
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
