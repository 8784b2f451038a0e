package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var ServerOptions = trace.WithSpanKind(trace.SpanKindServer)
var ClientOptions = trace.WithSpanKind(trace.SpanKindClient)

const InstrumentationName = "github.com/GlintPay/storefront"

func GetTracer(ctx context.Context) trace.Tracer {
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		return newTracer(span.TracerProvider())
	}
	return newTracer(otel.GetTracerProvider())
}

// StartBackendSpan starts a client span for one call to a storage backend, or does nothing when
// tracing is disabled. The returned func must always be called.
func StartBackendSpan(ctx context.Context, enabled bool, operation string, backendName string) (context.Context, func(error)) {
	if !enabled {
		return ctx, func(error) {}
	}

	ctx, span := GetTracer(ctx).Start(ctx, "backend-"+operation, ClientOptions,
		trace.WithAttributes(attribute.String("storefront.backend", backendName)))

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}
}

func newTracer(tp trace.TracerProvider) trace.Tracer {
	return tp.Tracer(InstrumentationName, trace.WithInstrumentationVersion("semver:1.0"))
}
