package verify

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Pool bounds concurrent verification work. Document parsing and cascade
// detection are CPU-bound; running them through the pool keeps a burst of
// registrations from starving unrelated request handlers.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool creates a pool allowing at most size concurrent checks. A size
// below 1 falls back to GOMAXPROCS.
func NewPool(size int) *Pool {
	if size < 1 {
		size = runtime.GOMAXPROCS(0)
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size))}
}

// Do runs check once a slot is available. It returns the check's result, or
// an error if ctx is cancelled while waiting for a slot.
func (p *Pool) Do(ctx context.Context, check func() bool) (bool, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer p.sem.Release(1)
	return check(), nil
}
