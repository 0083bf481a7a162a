// Package workers bounds the number of external operations in flight so the
// rest of the process stays responsive while subprocesses and network calls
// run.
package workers

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool admits at most n operations at a time. Callers block in Do until a
// slot frees up or their context is cancelled; a running operation is never
// interrupted, its result is simply discarded by the abandoning caller.
type Pool struct {
	sem *semaphore.Weighted
}

// New returns a pool of n slots. n below 1 is treated as 1.
func New(n int64) *Pool {
	if n < 1 {
		n = 1
	}
	return &Pool{sem: semaphore.NewWeighted(n)}
}

// Do runs fn inside one pool slot.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.sem.Release(1)
	return fn()
}
