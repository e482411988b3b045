package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStoreGetOrLoadCollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var loads atomic.Int32

	loader := func(context.Context) (any, error) {
		loads.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "week", nil
	}

	const readers = 24
	gate := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(readers)
	errCh := make(chan error, readers)

	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			<-gate
			v, err := store.GetOrLoad(context.Background(), "week:2526-w01", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "week" {
				errCh <- errors.New("wrong cached value")
			}
		}()
	}

	close(gate)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("GetOrLoad: %v", err)
	}

	if got := loads.Load(); got != 1 {
		t.Fatalf("loader ran %d times, want 1", got)
	}
}

func TestStoreGetOrLoadServesCachedValue(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var loads atomic.Int32

	loader := func(context.Context) (any, error) {
		loads.Add(1)
		return "season", nil
	}

	for i := 0; i < 3; i++ {
		if _, err := store.GetOrLoad(context.Background(), "season:7", loader); err != nil {
			t.Fatalf("GetOrLoad %d: %v", i, err)
		}
	}

	if got := loads.Load(); got != 1 {
		t.Fatalf("loader ran %d times, want 1", got)
	}
}

func TestStoreExpiredEntryReloads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Nanosecond)
	var loads atomic.Int32

	loader := func(context.Context) (any, error) {
		loads.Add(1)
		return "teams", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "teams:7", loader); err != nil {
		t.Fatalf("first GetOrLoad: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, err := store.GetOrLoad(context.Background(), "teams:7", loader); err != nil {
		t.Fatalf("second GetOrLoad: %v", err)
	}

	if got := loads.Load(); got != 2 {
		t.Fatalf("loader ran %d times, want 2 after expiry", got)
	}
}

func TestStoreDeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	store.Set(ctx, "week:2526-w01", 1)
	store.Set(ctx, "week:2526-w02", 2)
	store.Set(ctx, "season:7", 3)

	store.DeletePrefix(ctx, "week:")

	if _, ok := store.Get(ctx, "week:2526-w01"); ok {
		t.Fatal("prefixed key survived DeletePrefix")
	}
	if _, ok := store.Get(ctx, "season:7"); !ok {
		t.Fatal("unrelated key was dropped")
	}
}
