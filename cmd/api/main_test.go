package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTelemetryHooks_ShutdownRunsAllNewestFirst(t *testing.T) {
	t.Parallel()

	var order []string
	hook := func(name string, err error) telemetryHook {
		return telemetryHook{name: name, shutdown: func(context.Context) error {
			order = append(order, name)
			return err
		}}
	}
	hooks := telemetryHooks{
		hook("uptrace", nil),
		hook("betterstack", errors.New("flush timed out")),
		hook("profiling", nil),
	}

	var stderr bytes.Buffer
	hooks.shutdown(t.Context(), &stderr)

	if got := strings.Join(order, ","); got != "profiling,betterstack,uptrace" {
		t.Fatalf("unexpected shutdown order: %s", got)
	}
	if stderr.String() != "betterstack shutdown: flush timed out\n" {
		t.Fatalf("unexpected error report: %q", stderr.String())
	}
}

func TestTelemetryHooks_ShutdownWithNoHooks(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	telemetryHooks(nil).shutdown(t.Context(), &stderr)
	if stderr.Len() != 0 {
		t.Fatalf("expected no output, got %q", stderr.String())
	}
}
