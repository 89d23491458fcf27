// Package telemetry wires OpenTelemetry tracing and Prometheus metrics for
// generation requests.
package telemetry

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TracerName is the instrumentation scope for imagefy spans.
const TracerName = "imagefy/submission"

// Tracing owns the tracer provider. A nil or disabled Tracing hands out a
// no-op tracer.
type Tracing struct {
	provider *sdktrace.TracerProvider
}

// NewTracing creates an OTLP/HTTP exporter if OTEL_EXPORTER_OTLP_ENDPOINT is
// set. Returns a disabled Tracing otherwise.
func NewTracing(ctx context.Context) (*Tracing, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return &Tracing{}, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "imagefy"
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return &Tracing{provider: provider}, nil
}

// Enabled reports whether spans are exported.
func (t *Tracing) Enabled() bool {
	return t != nil && t.provider != nil
}

// NoopTracer returns a tracer that records nothing.
func NoopTracer() oteltrace.Tracer {
	return noop.NewTracerProvider().Tracer(TracerName)
}

// Tracer returns the imagefy tracer.
func (t *Tracing) Tracer() oteltrace.Tracer {
	if !t.Enabled() {
		return NoopTracer()
	}
	return t.provider.Tracer(TracerName)
}

// Shutdown flushes and closes the exporter.
func (t *Tracing) Shutdown(ctx context.Context) error {
	if !t.Enabled() {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
