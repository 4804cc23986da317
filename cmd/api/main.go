package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/riskibarqy/course-marketplace/internal/app"
	"github.com/riskibarqy/course-marketplace/internal/config"
	"github.com/riskibarqy/course-marketplace/internal/observability"
	"github.com/riskibarqy/course-marketplace/internal/platform/logging"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "course-marketplace-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	if cfg.AppEnv == config.EnvDev {
		logger = logging.NewConsole(cfg.LogLevel)
	}
	logger = logger.With("service", cfg.ServiceName, "version", cfg.ServiceVersion, "env", cfg.AppEnv)

	// telemetry hooks run in reverse start order on every exit path
	var telemetry telemetryHooks
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		telemetry.shutdown(shutdownCtx, os.Stderr)
		_ = logger.Sync()
	}()

	logger, shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return fmt.Errorf("init uptrace: %w", err)
	}
	telemetry = append(telemetry, telemetryHook{name: "uptrace", shutdown: shutdownUptrace})
	logger, shutdownBetterStack, err := observability.InitBetterStackLogger(cfg, logger)
	if err != nil {
		return fmt.Errorf("init betterstack: %w", err)
	}
	telemetry = append(telemetry, telemetryHook{name: "betterstack", shutdown: shutdownBetterStack})
	logging.SetDefault(logger)

	stopProfiling, err := observability.StartProfiling(cfg, logger.Named("profiling"))
	if err != nil {
		return fmt.Errorf("start profiling: %w", err)
	}
	telemetry = append(telemetry, telemetryHook{name: "profiling", shutdown: stopProfiling})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr)
		if err := application.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err, ok := <-serveErr:
		if ok {
			logger.Error("http server failed", "error", err)
			runErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := application.Server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		runErr = errors.Join(runErr, err)
	}
	if err := application.Close(shutdownCtx); err != nil {
		logger.Error("close app resources", "error", err)
	}
	logger.Info("http server stopped")

	return runErr
}

type telemetryHook struct {
	name     string
	shutdown func(context.Context) error
}

type telemetryHooks []telemetryHook

// shutdown runs every hook, newest first, and reports failures to w.
func (hooks telemetryHooks) shutdown(ctx context.Context, w io.Writer) {
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i].shutdown(ctx); err != nil {
			fmt.Fprintf(w, "%s shutdown: %v\n", hooks[i].name, err)
		}
	}
}
