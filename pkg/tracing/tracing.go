// Package tracing provides an OpenTelemetry observer for a ripple registry.
//
// The observer creates a span per snapshot transition and per derived
// recomputation. Attach it when building the registry:
//
//	reg := ripple.New(ripple.WithObserver(tracing.NewObserver()))
//
// The tracer uses the global OpenTelemetry tracer provider. Configure it in
// your main() before creating the observer:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// defaultTracerName is the tracer name used unless overridden.
const defaultTracerName = "ripple"

// Config configures the OpenTelemetry observer.
type Config struct {
	// TracerName is the name of the tracer (default: "ripple").
	TracerName string

	// Filter determines which stores to trace.
	// Return true to trace the store, false to skip.
	// If nil, all stores are traced.
	Filter func(store string) bool

	// AttributeExtractor extracts custom attributes per store.
	// Called for each traced event.
	AttributeExtractor func(store string) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// Option configures the OpenTelemetry observer.
type Option func(*Config)

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

// WithFilter sets a per-store filter.
func WithFilter(filter func(store string) bool) Option {
	return func(c *Config) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(store string) []attribute.KeyValue) Option {
	return func(c *Config) {
		c.AttributeExtractor = extractor
	}
}

// Observer implements ripple.Observer with OpenTelemetry spans.
type Observer struct {
	config Config
}

// NewObserver creates an OpenTelemetry observer with the given options.
func NewObserver(opts ...Option) *Observer {
	config := Config{
		TracerName: defaultTracerName,
	}
	for _, opt := range opts {
		opt(&config)
	}

	// Resolve tracer from global provider
	config.tracer = otel.Tracer(config.TracerName)

	return &Observer{config: config}
}

// StoreCreated implements ripple.Observer.
func (o *Observer) StoreCreated(name string) {
	if o.skip(name) {
		return
	}
	_, span := o.config.tracer.Start(context.Background(), "ripple.store.create",
		trace.WithAttributes(o.attrs(name)...))
	span.End()
}

// StoreSet implements ripple.Observer.
func (o *Observer) StoreSet(name string, silent bool) {
	if o.skip(name) {
		return
	}
	attrs := append(o.attrs(name), attribute.Bool("ripple.silent", silent))
	_, span := o.config.tracer.Start(context.Background(), "ripple.store.set",
		trace.WithAttributes(attrs...))
	span.End()
}

// DerivedRecomputed implements ripple.Observer.
// The recompute already finished when the observer fires, so the span is
// backdated to cover the measured duration.
func (o *Observer) DerivedRecomputed(name string, elapsed time.Duration) {
	if o.skip(name) {
		return
	}
	start := time.Now().Add(-elapsed)
	_, span := o.config.tracer.Start(context.Background(), "ripple.derived.recompute",
		trace.WithTimestamp(start),
		trace.WithAttributes(o.attrs(name)...))
	span.End()
}

func (o *Observer) skip(name string) bool {
	return o.config.Filter != nil && !o.config.Filter(name)
}

func (o *Observer) attrs(name string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("ripple.store", name),
	}
	if o.config.AttributeExtractor != nil {
		attrs = append(attrs, o.config.AttributeExtractor(name)...)
	}
	return attrs
}
