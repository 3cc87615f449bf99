// Package metrics provides a Prometheus observer for a ripple registry.
//
// Attach it when building the registry:
//
//	reg := ripple.New(ripple.WithObserver(metrics.NewObserver()))
//
// Metrics collected:
//   - ripple_stores_created_total: Counter of store registrations
//   - ripple_store_sets_total: Counter of snapshot transitions by store and silent flag
//   - ripple_derived_recomputes_total: Counter of derived recomputations by store
//   - ripple_derived_recompute_duration_seconds: Histogram of recompute duration
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the Prometheus observer.
type Config struct {
	// Namespace is the metrics namespace (default: "ripple").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for recompute duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the Prometheus observer.
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

// WithBuckets sets the recompute duration histogram buckets.
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

func defaultConfig() Config {
	return Config{
		Namespace: "ripple",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Observer implements ripple.Observer backed by Prometheus metrics.
type Observer struct {
	storesCreated     prometheus.Counter
	storeSets         *prometheus.CounterVec
	recomputes        *prometheus.CounterVec
	recomputeDuration *prometheus.HistogramVec
}

// NewObserver creates a Prometheus observer with the given options.
func NewObserver(opts ...Option) *Observer {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Observer{
		storesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "stores_created_total",
			Help:        "Total number of store registrations",
			ConstLabels: config.ConstLabels,
		}),

		storeSets: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "store_sets_total",
			Help:        "Total number of snapshot transitions",
			ConstLabels: config.ConstLabels,
		}, []string{"store", "silent"}),

		recomputes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "derived_recomputes_total",
			Help:        "Total number of derived recomputations",
			ConstLabels: config.ConstLabels,
		}, []string{"store"}),

		recomputeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "derived_recompute_duration_seconds",
			Help:        "Derived recomputation duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"store"}),
	}
}

// StoreCreated implements ripple.Observer.
func (o *Observer) StoreCreated(name string) {
	o.storesCreated.Inc()
}

// StoreSet implements ripple.Observer.
func (o *Observer) StoreSet(name string, silent bool) {
	label := "false"
	if silent {
		label = "true"
	}
	o.storeSets.WithLabelValues(name, label).Inc()
}

// DerivedRecomputed implements ripple.Observer.
func (o *Observer) DerivedRecomputed(name string, elapsed time.Duration) {
	o.recomputes.WithLabelValues(name).Inc()
	o.recomputeDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}
