package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	current := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return current }

	ctx := context.Background()
	store.Set(ctx, "k", 1)

	if _, ok := store.Get(ctx, "k"); !ok {
		t.Fatalf("expected fresh entry to be present")
	}

	current = current.Add(2 * time.Minute)
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestStore_GetOrLoad_LoadsOnceAndCaches(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	var loads atomic.Int32

	for i := 0; i < 3; i++ {
		value, err := store.GetOrLoad(ctx, "penalties", func() (any, error) {
			loads.Add(1)
			return "summary", nil
		})
		if err != nil {
			t.Fatalf("GetOrLoad: %v", err)
		}
		if value != "summary" {
			t.Fatalf("unexpected value: %v", value)
		}
	}

	if got := loads.Load(); got != 1 {
		t.Fatalf("expected 1 load, got %d", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	failure := errors.New("boom")

	if _, err := store.GetOrLoad(ctx, "k", func() (any, error) { return nil, failure }); !errors.Is(err, failure) {
		t.Fatalf("expected load error, got %v", err)
	}

	value, err := store.GetOrLoad(ctx, "k", func() (any, error) { return 7, nil })
	if err != nil {
		t.Fatalf("GetOrLoad after failure: %v", err)
	}
	if value != 7 {
		t.Fatalf("unexpected value: %v", value)
	}
}
