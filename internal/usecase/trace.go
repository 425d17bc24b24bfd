package usecase

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	usecaseTracer   = otel.Tracer("mlb-team-timeline/internal/usecase")
	usecaseNoopSpan = trace.SpanFromContext(context.Background())
)

// startUsecaseSpan only opens a child span when the caller is already
// traced.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if name == "" || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// endSpan records err on span before ending it. Expected outcomes such as
// an unmatched query are not span errors.
func endSpan(span trace.Span, err error) {
	if err != nil && !isExpected(err) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func isExpected(err error) bool {
	for _, target := range []error{ErrInvalidInput, ErrNotFound, ErrNoMatch, ErrEmptyRoster} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
