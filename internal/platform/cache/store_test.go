package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLoad_DeduplicatesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) ([]string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return []string{"design", "programming"}, nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	errCh := make(chan error, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			got, err := Load(context.Background(), store, "catalog:categories", loader)
			if err != nil {
				errCh <- err
				return
			}
			if len(got) != 2 {
				errCh <- errors.New("unexpected loaded value")
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestLoad_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	errBoom := errors.New("db down")
	calls := 0

	loader := func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, errBoom
		}
		return 7, nil
	}

	if _, err := Load(t.Context(), store, "k", loader); !errors.Is(err, errBoom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	got, err := Load(t.Context(), store, "k", loader)
	if err != nil || got != 7 {
		t.Fatalf("expected reload to succeed with 7, got %d err=%v", got, err)
	}
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(t.Context(), "catalog:universities", "cached")
	if _, ok := store.Get(t.Context(), "catalog:universities"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(time.Minute)
	if _, ok := store.Get(t.Context(), "catalog:universities"); ok {
		t.Fatalf("expected entry to expire")
	}

	stats := store.Stats()
	if stats.Entries != 0 || stats.Hits != 1 || stats.Misses != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestStore_InvalidatePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := t.Context()
	store.Set(ctx, "catalog:category:id:1", 1)
	store.Set(ctx, "catalog:category:id:2", 2)
	store.Set(ctx, "catalog:categories", 3)

	store.InvalidatePrefix(ctx, "catalog:category:id:")
	if _, ok := store.Get(ctx, "catalog:category:id:1"); ok {
		t.Fatalf("expected prefixed key dropped")
	}
	if _, ok := store.Get(ctx, "catalog:categories"); !ok {
		t.Fatalf("expected unrelated key kept")
	}

	store.Invalidate(ctx, "catalog:categories")
	if store.Stats().Entries != 0 {
		t.Fatalf("expected empty store")
	}
}
