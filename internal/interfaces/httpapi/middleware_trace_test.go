package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/riskibarqy/course-marketplace/internal/platform/logging"
)

func TestShouldTraceRequest(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz", " /HEALTHZ "} {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for path %q", path)
		}
	}
	for _, path := range []string{"/v1/me/dashboard", "/v1/courses", "/", "/docs"} {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for path %q", path)
		}
	}
}

func TestRequestLogging_LevelFollowsStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   zapcore.Level
	}{
		{status: http.StatusOK, want: zapcore.InfoLevel},
		{status: http.StatusNotFound, want: zapcore.InfoLevel},
		{status: http.StatusPaymentRequired, want: zapcore.WarnLevel},
		{status: http.StatusBadGateway, want: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		core, logs := observer.New(zapcore.DebugLevel)
		logger := logging.FromZap(zap.New(core))
		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tt.status)
			_, _ = w.Write([]byte("body"))
		})

		req := httptest.NewRequest(http.MethodPost, "/v1/checkout", nil)
		req.Header.Set("X-Real-IP", "203.0.113.7")
		RequestLogging(logger, next).ServeHTTP(httptest.NewRecorder(), req)

		entries := logs.All()
		if len(entries) != 1 {
			t.Fatalf("status %d: expected one access line, got %d", tt.status, len(entries))
		}
		if entries[0].Level != tt.want {
			t.Fatalf("status %d: expected level %s, got %s", tt.status, tt.want, entries[0].Level)
		}
		fields := entries[0].ContextMap()
		if fields["client_ip"] != "203.0.113.7" || fields["bytes"] != int64(4) {
			t.Fatalf("status %d: unexpected fields %v", tt.status, fields)
		}
	}
}
