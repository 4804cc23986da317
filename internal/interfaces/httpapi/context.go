package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/course-marketplace/internal/domain/user"
	"github.com/riskibarqy/course-marketplace/internal/usecase"
)

type principalKey struct{}

// withPrincipal stores the authenticated caller and tags the request span.
func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(principalAttributes(p.UserID, string(p.Role))...)
	}
	return context.WithValue(ctx, principalKey{}, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(user.Principal)
	return p, ok
}

// viewerFromContext is the optional caller on public routes.
func viewerFromContext(ctx context.Context) *user.Principal {
	p, ok := principalFromContext(ctx)
	if !ok {
		return nil
	}
	return &p
}

func requirePrincipal(ctx context.Context, w http.ResponseWriter) (user.Principal, bool) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return user.Principal{}, false
	}
	return principal, true
}
