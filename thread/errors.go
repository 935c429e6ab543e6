package thread

import (
	"errors"
)

var (
	// ErrResourceExhausted is returned when the live thread limit
	// (see SetMaxThreads) has been reached.
	ErrResourceExhausted = errors.New("thread: insufficient resources to create another thread, or thread limit reached")

	// ErrInvalidParams is returned for invalid creation parameters.
	ErrInvalidParams = errors.New("thread: invalid settings in thread parameters")

	// ErrPermission is returned when the scheduling parameters could
	// not be applied to the new thread.
	ErrPermission = errors.New("thread: no permission to set the scheduling parameters")

	// ErrDeadlock is reported when a thread tries to join itself.
	ErrDeadlock = errors.New("thread: deadlock detected, thread tried to join itself")

	// ErrNotJoinable is returned by ID and NativeHandle when the Thread
	// holds no live context.
	ErrNotJoinable = errors.New("thread: thread is not joinable")

	// ErrNilFunc is returned when a Thread is created without work.
	ErrNilFunc = errors.New("thread: func is nil")
)
