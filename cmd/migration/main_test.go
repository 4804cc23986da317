package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/riskibarqy/course-marketplace/internal/platform/logging"
)

func TestParseSteps(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{name: "default one", args: nil, want: 1},
		{name: "explicit", args: []string{" 3 "}, want: 3},
		{name: "zero", args: []string{"0"}, wantErr: true},
		{name: "garbage", args: []string{"abc"}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseSteps(tc.args)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %v", tc.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse steps: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	t.Parallel()

	if v, err := parseVersion("7"); err != nil || v != 7 {
		t.Fatalf("unexpected version %d err=%v", v, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected negative version error")
	}
	if v, err := parseTarget("12"); err != nil || v != 12 {
		t.Fatalf("unexpected target %d err=%v", v, err)
	}
	if _, err := parseTarget("x"); err == nil {
		t.Fatalf("expected invalid target error")
	}
}

func TestNormalizeDBURL(t *testing.T) {
	t.Parallel()

	raw := "postgres://u:p@localhost:5432/courses?sslmode=disable"
	if got := normalizeDBURL(raw, false); got != raw {
		t.Fatalf("expected url unchanged, got %s", got)
	}
	got := normalizeDBURL(raw, true)
	if !strings.Contains(got, "disable_prepared_binary_result=yes") || !strings.Contains(got, "sslmode=disable") {
		t.Fatalf("unexpected normalized url: %s", got)
	}
}

func TestRun_RequiresCommandAndDBURL(t *testing.T) {
	logger := logging.NewNop()

	if err := run(nil, logger); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}

	t.Setenv("DB_URL", "")
	if err := run([]string{"up"}, logger); err == nil || !strings.Contains(err.Error(), "DB_URL") {
		t.Fatalf("expected DB_URL error, got %v", err)
	}

	t.Setenv("DB_URL", "memory://")
	if err := run([]string{"up"}, logger); err == nil || !strings.Contains(err.Error(), "in-memory") {
		t.Fatalf("expected in-memory error, got %v", err)
	}
}
