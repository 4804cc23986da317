package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/course-marketplace/internal/config"
	"github.com/riskibarqy/course-marketplace/internal/platform/logging"
)

func TestStartProfiling_DisabledIsNoop(t *testing.T) {
	t.Parallel()

	stop, err := StartProfiling(config.Config{}, logging.NewNop())
	if err != nil {
		t.Fatalf("start profiling: %v", err)
	}
	if err := stop(context.Background()); err != nil {
		t.Fatalf("stop profiling: %v", err)
	}
}

func TestStartProfiling_PprofServes(t *testing.T) {
	t.Parallel()

	stop, err := StartProfiling(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	if err != nil {
		t.Fatalf("start profiling: %v", err)
	}
	if err := stop(t.Context()); err != nil {
		t.Fatalf("stop profiling: %v", err)
	}
}
