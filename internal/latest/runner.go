// Package latest runs background jobs where each new request supersedes the
// one in flight.
package latest

import (
	"context"
	"sync"
)

// Job computes a result. It should return promptly once ctx is cancelled.
type Job[T any] func(ctx context.Context) (T, error)

// Runner executes at most one live job at a time. Submitting a job cancels
// the previous one, and only the result of the most recent job is delivered.
type Runner[T any] struct {
	deliver func(T, error)

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Runner that hands results to deliver. deliver runs on the
// job's goroutine while the runner is locked, so it must not call Submit.
func New[T any](deliver func(T, error)) *Runner[T] {
	return &Runner[T]{deliver: deliver}
}

// Submit cancels any in-flight job and starts job under a fresh context
// derived from parent.
func (r *Runner[T]) Submit(parent context.Context, job Job[T]) {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	r.seq++
	seq := r.seq
	r.cancel = cancel
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer cancel()
		result, err := job(ctx)

		r.mu.Lock()
		defer r.mu.Unlock()
		if seq != r.seq || ctx.Err() != nil {
			return
		}
		r.cancel = nil
		if r.deliver != nil {
			r.deliver(result, err)
		}
	}()
}

// Wait blocks until every submitted job has returned.
func (r *Runner[T]) Wait() {
	r.wg.Wait()
}

// Stop cancels the in-flight job, if any, and waits for all jobs to return.
func (r *Runner[T]) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.seq++
	r.mu.Unlock()
	r.Wait()
}
