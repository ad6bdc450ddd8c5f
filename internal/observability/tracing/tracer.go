// Package tracing wires OpenTelemetry into the HTTP server and the outbound sentiment client.
//
// No exporter is configured: spans exist to give every request a trace ID that is
// returned in X-Trace-Id and written to the request log, and to let tests and
// future exporters observe the upstream call.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName identifies spans created by this application.
const InstrumentationName = "sentiment-analyzer"

// GetTracer returns the tracer of the currently installed global provider.
//
// It is resolved on every call so a provider installed after package init
// (by main or by a test) is always honored.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "nlu.Analyze")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// Init installs an SDK tracer provider sampling the given fraction of new traces
// (parent decisions are always respected) and the W3C trace-context propagator.
// The returned function flushes and stops the provider.
func Init(sampleRatio float64) func(context.Context) error {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown
}
