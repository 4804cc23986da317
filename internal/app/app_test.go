package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/course-marketplace/internal/config"
	"github.com/riskibarqy/course-marketplace/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                     config.EnvDev,
		ServiceName:                "course-marketplace-api",
		HTTPAddr:                   ":0",
		DBURL:                      MemoryDBURL,
		CacheEnabled:               true,
		CacheTTL:                   time.Minute,
		CORSAllowedOrigins:         []string{"*"},
		JWTSecret:                  "test-secret",
		JWTIssuer:                  "course-marketplace-test",
		JWTAccessTTL:               time.Hour,
		BcryptCost:                 4,
		DeviceMaxActive:            2,
		DeviceSessionTTL:           time.Hour,
		S3Region:                   "us-east-1",
		S3Endpoint:                 "http://localhost:9000",
		S3BucketLessonVideos:       "lesson-videos",
		S3BucketLessonPDFs:         "lesson-pdfs",
		S3BucketPaymentScreenshots: "payment-screenshots",
		UploadMaxVideoBytes:        1 << 20,
		UploadMaxPDFBytes:          1 << 20,
		UploadMaxScreenshotBytes:   1 << 20,
		NotifyWorkers:              2,
	}
}

func TestNew_MemoryStoreServesCatalog(t *testing.T) {
	t.Parallel()

	a, err := New(t.Context(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close(t.Context()) })

	server := httptest.NewServer(a.Server.Handler)
	defer server.Close()

	for _, path := range []string{"/healthz", "/v1/universities", "/v1/categories", "/v1/courses"} {
		resp, err := server.Client().Get(server.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}

func TestNew_RejectsInvalidDevicePolicy(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.DeviceMaxActive = 0
	if _, err := New(t.Context(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for zero device cap")
	}
}

func TestNew_RequiresHTTPAddr(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.HTTPAddr = " "
	if _, err := New(t.Context(), cfg, logging.NewNop()); err == nil || !strings.Contains(err.Error(), "addr") {
		t.Fatalf("expected addr error, got %v", err)
	}
}
