// Package workerpool provides a fixed-size pool of worker threads draining
// a shared FIFO task queue.
//
// Architecture overview
//
// A Pool owns Size managed threads (package thread), each locked to its own
// OS thread and running the same worker loop. Producers call Submit,
// which appends a task to the queue under the pool mutex, signals one idle
// worker and returns a Future immediately.
//
// Two conditions share the pool mutex:
//
//   - pushed: a task became available or stop was requested
//   - drained: a worker popped the last pending task
//
// Every wait is predicate-guarded, so spurious wakeups are harmless and no
// worker busy-spins while idle.
//
// Ordering
//
// Tasks leave the queue in submission order. With more than one worker,
// tasks submitted back to back may run concurrently and complete out of
// order.
//
// Shutdown
//
// Join(true) waits until the queue is empty, then stops and joins every
// worker. Join(false) stops the workers right away; tasks still queued are
// abandoned and their futures resolve with ErrAbandoned. A running task is
// never interrupted.
//
// Error handling
//
// The pool distinguishes between two classes of errors:
//
//   - Task errors: returned by task functions or produced by panic recovery.
//     They are delivered through the task's Future and to OnTaskError.
//   - Internal errors: worker threads that could not be spawned. They are
//     returned by New and logged.
//
// Panics inside tasks are recovered so that workers keep running.
//
// CPU pinning
//
// On Linux, worker threads may be pinned to CPUs through
// Options.Thread.Affinity. This can improve cache locality for CPU-bound
// workloads, but is not universally beneficial.
package workerpool
