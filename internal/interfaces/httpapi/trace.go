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
	apiTracer = otel.Tracer("spl-fantasy/internal/interfaces/httpapi")
	noopSpan  = trace.SpanFromContext(context.Background())
)

// startSpan opens a child span for handler entry points only. Requests that
// were not traced upstream (health, metrics) get the no-op span.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() || !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(principalSpanAttributes(ctx)...))
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}

func principalSpanAttributes(ctx context.Context) []attribute.KeyValue {
	p, ok := principalFromContext(ctx)
	if !ok || p.UserID == "" {
		return nil
	}
	return []attribute.KeyValue{
		attribute.String("enduser.id", p.UserID),
		attribute.String("enduser.role", string(p.Role)),
	}
}
