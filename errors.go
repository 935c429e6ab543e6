package workerpool

import (
	"errors"
	"fmt"
)

var (
	// ErrPoolClosed is returned when submitting after shutdown has begun.
	ErrPoolClosed = errors.New("workerpool: pool closed")

	// ErrNilFunc is returned when a submitted task has a nil func.
	ErrNilFunc = errors.New("workerpool: task func is nil")

	// ErrAbandoned resolves the futures of tasks still queued when the
	// pool was joined without draining.
	ErrAbandoned = errors.New("workerpool: task abandoned at shutdown")

	// ErrFutureConsumed is returned by Future.Get after the first call.
	ErrFutureConsumed = errors.New("workerpool: future already retrieved")

	// ErrInvalidSize is returned for a negative pool size.
	ErrInvalidSize = errors.New("workerpool: invalid pool size")
)

// PanicError wraps a value recovered from a panicking task.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("workerpool: task panicked: %v\n%s", e.Value, e.Stack)
}
