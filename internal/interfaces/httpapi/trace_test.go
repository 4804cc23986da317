package httpapi

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/course-marketplace/internal/domain/user"
)

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "handler span", in: "httpapi.Handler.Checkout", want: true},
		{name: "middleware span", in: "httpapi.RequireRole", want: false},
		{name: "helper span", in: "httpapi.writeError", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shouldCreateHTTPAPISpan(tt.in)
			if got != tt.want {
				t.Fatalf("shouldCreateHTTPAPISpan(%q)=%v want=%v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStartSpan_NoParentIsNoop(t *testing.T) {
	t.Parallel()

	ctx := withPrincipal(context.Background(), user.Principal{UserID: "u-1", Role: user.RoleStudent})
	got, span := startSpan(ctx, "httpapi.Handler.GetMyDashboard")
	if got != ctx {
		t.Fatalf("expected context unchanged without a parent span")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected no-op span")
	}
}

func TestStartSpan_KeepsParentTrace(t *testing.T) {
	t.Parallel()

	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1, 2, 3},
		SpanID:     trace.SpanID{4, 5, 6},
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})
	ctx := trace.ContextWithRemoteSpanContext(context.Background(), parent)

	_, span := startSpan(ctx, "httpapi.Handler.Checkout")
	defer span.End()
	if span.SpanContext().TraceID() != parent.TraceID() {
		t.Fatalf("expected child span in parent trace, got %s", span.SpanContext().TraceID())
	}
}

func TestPrincipalAttributes(t *testing.T) {
	t.Parallel()

	attrs := principalAttributes("u-9", "instructor")
	if len(attrs) != 2 || attrs[0].Value.AsString() != "u-9" || attrs[1].Value.AsString() != "instructor" {
		t.Fatalf("unexpected attributes: %v", attrs)
	}
}
