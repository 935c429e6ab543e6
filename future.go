package workerpool

import (
	"context"
	"sync/atomic"
	"time"
)

// Future is the completion handle of a submitted task.
//
// It becomes ready exactly once: when a worker has finished running the
// task, or when the task is abandoned by a non-draining Join.
type Future struct {
	done     chan struct{}
	err      error
	consumed atomic.Bool
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// resolve must be called exactly once.
func (f *Future) resolve(err error) {
	f.err = err
	close(f.done)
}

// Done returns a channel closed when the future becomes ready.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Ready reports whether the task has finished.
func (f *Future) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the future is ready.
func (f *Future) Wait() {
	<-f.done
}

// WaitFor waits up to d and reports whether the future became ready.
func (f *Future) WaitFor(d time.Duration) bool {
	if f.Ready() {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-f.done:
		return true
	case <-timer.C:
		return false
	}
}

// WaitContext blocks until the future is ready or ctx is done.
func (f *Future) WaitContext(ctx context.Context) error {
	select {
	case <-f.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Get waits for the task and returns its outcome: nil, the error returned by
// the task, a *PanicError, or ErrAbandoned. Only the first call retrieves
// the outcome; later calls return ErrFutureConsumed.
func (f *Future) Get() error {
	<-f.done
	if !f.consumed.CompareAndSwap(false, true) {
		return ErrFutureConsumed
	}
	return f.err
}
