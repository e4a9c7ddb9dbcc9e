package verify

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
)

func TestPool_ReturnsCheckResult(t *testing.T) {
	pool := NewPool(2)

	ok, err := pool.Do(context.Background(), func() bool { return true })
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if !ok {
		t.Error("expected true from check")
	}

	ok, err = pool.Do(context.Background(), func() bool { return false })
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if ok {
		t.Error("expected false from check")
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	const size = 2
	pool := NewPool(size)

	var running, peak atomic.Int32
	gate := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = pool.Do(context.Background(), func() bool {
				n := running.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				<-gate
				running.Add(-1)
				return true
			})
		}()
	}

	close(gate)
	wg.Wait()

	if peak.Load() > size {
		t.Errorf("expected at most %d concurrent checks, saw %d", size, peak.Load())
	}
}

func TestPool_CancelledContext(t *testing.T) {
	pool := NewPool(1)

	// Occupy the only slot and wait until the check is running, so the
	// cancelled acquire below cannot race it.
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = pool.Do(context.Background(), func() bool {
			close(started)
			<-release
			return true
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := pool.Do(ctx, func() bool { return true }); err == nil {
		t.Error("expected error when context is cancelled before a slot frees")
	}

	close(release)
	<-done
}
