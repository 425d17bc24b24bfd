package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var (
	apiTracer = otel.Tracer("mlb-team-timeline/internal/interfaces/httpapi")
	noopSpan  = trace.SpanFromContext(context.Background())
)

// startSpan opens a child span for handler entry points only. Helpers and
// middleware share the request span, and untraced requests (health
// probes) get a noop span.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() || !isHandlerSpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func isHandlerSpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix) && len(name) > len(handlerSpanPrefix)
}
