package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("course-marketplace/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// startSpan opens a child span for handler entry points only. Middleware and
// response helpers get a no-op span so traces stay one level deep per request.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		// untraced routes such as /healthz
		return ctx, noopSpan
	}
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}

	ctx, span := apiTracer.Start(ctx, name)
	if principal, ok := principalFromContext(ctx); ok {
		span.SetAttributes(principalAttributes(principal.UserID, string(principal.Role))...)
	}
	return ctx, span
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}

func principalAttributes(userID, role string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("enduser.id", userID),
		attribute.String("enduser.role", role),
	}
}

// recordSpanError tags the active span with the mapped outcome. Only server
// side failures mark the span as errored; rejected input is a normal result.
func recordSpanError(ctx context.Context, mapped mappedError, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(
		attribute.Int("http.response.status_code", mapped.HTTPStatus),
		attribute.String("error.reason", mapped.Reason),
	)
	if mapped.HTTPStatus >= http.StatusInternalServerError {
		span.RecordError(err)
		span.SetStatus(codes.Error, mapped.Reason)
	}
}
