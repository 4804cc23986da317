package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/course-marketplace/internal/config"
	"github.com/riskibarqy/course-marketplace/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	t.Parallel()

	base := logging.NewNop()
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "course-marketplace-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	logger, shutdown, err := InitUptrace(cfg, base)
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if logger != base {
		t.Fatalf("expected logger to pass through when uptrace is disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitUptrace_EnabledWithoutDSN(t *testing.T) {
	t.Parallel()

	base := logging.NewNop()
	logger, _, err := InitUptrace(config.Config{UptraceEnabled: true}, base)
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if logger != base {
		t.Fatalf("expected logger to pass through without a DSN")
	}
}
