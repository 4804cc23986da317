package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/course-marketplace/internal/config"
	"github.com/riskibarqy/course-marketplace/internal/platform/logging"
)

type capturedShipments struct {
	mu     sync.Mutex
	bodies [][]byte
	auth   string
}

func (c *capturedShipments) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read shipped body: %v", err)
		}
		c.mu.Lock()
		c.bodies = append(c.bodies, body)
		c.auth = r.Header.Get("Authorization")
		c.mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}
}

func betterStackTestConfig(endpoint string) config.Config {
	return config.Config{
		BetterStackEnabled:       true,
		BetterStackEndpoint:      endpoint,
		BetterStackToken:         "secret-token",
		BetterStackTimeout:       2 * time.Second,
		BetterStackMinLevel:      logging.LevelWarn,
		BetterStackBatchSize:     10,
		BetterStackFlushInterval: time.Hour,
		ServiceName:              "course-marketplace-api",
		AppEnv:                   config.EnvDev,
	}
}

func TestInitBetterStackLogger_ShipsBatchOnShutdown(t *testing.T) {
	t.Parallel()

	captured := &capturedShipments{}
	server := httptest.NewServer(captured.handler(t))
	defer server.Close()

	logger, shutdown, err := InitBetterStackLogger(betterStackTestConfig(server.URL), logging.NewNop())
	if err != nil {
		t.Fatalf("init betterstack logger: %v", err)
	}

	logger.WarnContext(context.Background(), "checkout failed", "user_id", "u-1")
	logger.ErrorContext(context.Background(), "s3 upload failed", "bucket", "lesson-videos")
	logger.InfoContext(context.Background(), "below min level")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown logger: %v", err)
	}

	captured.mu.Lock()
	defer captured.mu.Unlock()
	if len(captured.bodies) != 1 {
		t.Fatalf("expected one batched request, got %d", len(captured.bodies))
	}
	if captured.auth != "Bearer secret-token" {
		t.Fatalf("unexpected authorization header: %q", captured.auth)
	}

	var entries []map[string]any
	if err := sonic.Unmarshal(captured.bodies[0], &entries); err != nil {
		t.Fatalf("decode batch %q: %v", captured.bodies[0], err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 shipped entries, got %d", len(entries))
	}
	if entries[0]["message"] != "checkout failed" || entries[0]["service"] != "course-marketplace-api" {
		t.Fatalf("unexpected first entry: %v", entries[0])
	}
}

func TestInitBetterStackLogger_FlushesFullBatch(t *testing.T) {
	t.Parallel()

	captured := &capturedShipments{}
	server := httptest.NewServer(captured.handler(t))
	defer server.Close()

	cfg := betterStackTestConfig(server.URL)
	cfg.BetterStackBatchSize = 2

	logger, shutdown, err := InitBetterStackLogger(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init betterstack logger: %v", err)
	}
	for range 5 {
		logger.Error("payment approval failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown logger: %v", err)
	}

	captured.mu.Lock()
	defer captured.mu.Unlock()
	if len(captured.bodies) != 3 {
		t.Fatalf("expected 3 requests for 5 entries with batch size 2, got %d", len(captured.bodies))
	}
}

func TestInitBetterStackLogger_Disabled(t *testing.T) {
	t.Parallel()

	base := logging.NewNop()
	logger, shutdown, err := InitBetterStackLogger(config.Config{}, base)
	if err != nil {
		t.Fatalf("init betterstack logger: %v", err)
	}
	if logger != base {
		t.Fatalf("expected base logger when disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestNormalizeBetterStackEndpoint(t *testing.T) {
	t.Parallel()

	if got := normalizeBetterStackEndpoint("s1.eu.betterstackdata.com"); got != "https://s1.eu.betterstackdata.com" {
		t.Fatalf("unexpected endpoint: %s", got)
	}
	if got := normalizeBetterStackEndpoint("http://localhost:9000"); got != "http://localhost:9000" {
		t.Fatalf("unexpected endpoint: %s", got)
	}
}
