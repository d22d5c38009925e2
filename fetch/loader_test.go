package fetch

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLoaderCachesPerKey(t *testing.T) {
	var calls int64
	loader := NewLoader[string]()

	fn := func() (string, error) {
		atomic.AddInt64(&calls, 1)
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		got, err := loader.Load("k", fn)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got != "value" {
			t.Errorf("Load: got %q", got)
		}
	}

	if n := atomic.LoadInt64(&calls); n != 1 {
		t.Errorf("fetches for one key: got %d, want 1", n)
	}
	if loader.State("k") != StateReady {
		t.Errorf("state: got %v, want StateReady", loader.State("k"))
	}
}

func TestLoaderDeduplicatesConcurrentLoads(t *testing.T) {
	var calls int64
	loader := NewLoader[int]()

	fn := func() (int, error) {
		atomic.AddInt64(&calls, 1)
		time.Sleep(20 * time.Millisecond)
		return 42, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if v, err := loader.Load("shared", fn); err != nil || v != 42 {
				t.Errorf("Load: got %d, %v", v, err)
			}
		}()
	}
	wg.Wait()

	if n := atomic.LoadInt64(&calls); n != 1 {
		t.Errorf("concurrent fetches: got %d, want 1", n)
	}
}

func TestLoaderFailureAllowsRetry(t *testing.T) {
	var calls int64
	loader := NewLoader[string]()

	failing := func() (string, error) {
		atomic.AddInt64(&calls, 1)
		return "", errors.New("down")
	}

	if _, err := loader.Load("k", failing); err == nil {
		t.Fatal("expected error")
	}
	if loader.State("k") != StateFailed {
		t.Errorf("state after failure: got %v, want StateFailed", loader.State("k"))
	}

	// a failed key is not cached; the next Load tries again
	if _, err := loader.Load("k", failing); err == nil {
		t.Fatal("expected error on retry")
	}
	if n := atomic.LoadInt64(&calls); n != 2 {
		t.Errorf("fetches: got %d, want 2", n)
	}
}

func TestLoaderInvalidateForcesRefetch(t *testing.T) {
	var calls int64
	loader := NewLoader[string]()

	fn := func() (string, error) {
		atomic.AddInt64(&calls, 1)
		return "v", nil
	}

	if _, err := loader.Load("k", fn); err != nil {
		t.Fatalf("Load: %v", err)
	}
	loader.Invalidate("k")

	if _, ok := loader.Cached("k"); ok {
		t.Error("Cached should miss after Invalidate")
	}
	if loader.State("k") != StateIdle {
		t.Errorf("state after Invalidate: got %v, want StateIdle", loader.State("k"))
	}

	if _, err := loader.Load("k", fn); err != nil {
		t.Fatalf("Load after Invalidate: %v", err)
	}
	if n := atomic.LoadInt64(&calls); n != 2 {
		t.Errorf("fetches: got %d, want 2", n)
	}
}

func TestLoaderSettled(t *testing.T) {
	loader := NewLoader[string]()
	if !loader.Settled() {
		t.Error("empty loader should be settled")
	}

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_, _ = loader.Load("slow", func() (string, error) {
			close(started)
			<-release
			return "done", nil
		})
	}()

	<-started
	if loader.Settled() {
		t.Error("loader should report unsettled while a key is loading")
	}
	close(release)
}
