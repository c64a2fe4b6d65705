// Package metrics collects Prometheus metrics for the SVG import
// pipeline. It implements the svg.Recorder contract so the router can
// report every resolve/load/transform invocation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the Prometheus collector.
type Config struct {
	// Namespace is the metrics namespace (default: "svgkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for phase duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the Prometheus collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// defaultConfig returns the default collector configuration.
func defaultConfig() Config {
	return Config{
		Namespace: "svgkit",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector records pipeline phase outcomes.
//
// Metrics collected:
//   - svgkit_phases_total: Counter of phase invocations by phase and disposition
//   - svgkit_phase_duration_seconds: Histogram of phase duration by phase
//   - svgkit_phase_errors_total: Counter of failed phase invocations by phase
type Collector struct {
	phasesTotal   *prometheus.CounterVec
	phaseDuration *prometheus.HistogramVec
	phaseErrors   *prometheus.CounterVec
}

// New creates a Collector and registers its metrics.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Collector{
		phasesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "phases_total",
			Help:        "Total number of pipeline phase invocations",
			ConstLabels: config.ConstLabels,
		}, []string{"phase", "disposition"}),

		phaseDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "phase_duration_seconds",
			Help:        "Pipeline phase duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"phase"}),

		phaseErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "phase_errors_total",
			Help:        "Total number of failed pipeline phase invocations",
			ConstLabels: config.ConstLabels,
		}, []string{"phase"}),
	}
}

// ObservePhase implements svg.Recorder.
func (c *Collector) ObservePhase(phase string, handled bool, d time.Duration, err error) {
	disposition := "deferred"
	if handled {
		disposition = "handled"
	}
	c.phasesTotal.WithLabelValues(phase, disposition).Inc()
	c.phaseDuration.WithLabelValues(phase).Observe(d.Seconds())
	if err != nil {
		c.phaseErrors.WithLabelValues(phase).Inc()
	}
}
