package workerpool

import (
	"sync/atomic"
)

// MetricsPolicy defines hooks used by the worker pool to report
// queueing and execution activity.
//
// Implementations must be safe for concurrent use.
// All methods are expected to be lightweight and non-blocking.
type MetricsPolicy interface {
	// IncQueued is called once per accepted submission.
	IncQueued()

	// BatchDecQueued decrements the queued counter by n when tasks
	// leave the queue, either dequeued by a worker or abandoned.
	BatchDecQueued(n int64)

	// IncExecuted is called after a task body returned without error.
	IncExecuted()

	// IncFailed is called after a task body returned an error or panicked.
	IncFailed()

	// AddAbandoned is called with the number of queued tasks dropped by
	// a non-draining join.
	AddAbandoned(n int64)
}

// AtomicMetrics is a lock-free metrics implementation backed by atomics.
//
// Writes are optimized for hot paths.
// Reads are intended for cold-path observation.
type AtomicMetrics struct {
	// executed is the total number of tasks that finished without error.
	executed atomic.Uint64

	_ [56]byte // padding to avoid false sharing

	// queued is the current number of tasks enqueued.
	queued atomic.Int64

	_ [56]byte

	submitted atomic.Uint64
	failed    atomic.Uint64
	abandoned atomic.Uint64
}

// Executed returns the total number of successfully executed tasks.
func (m *AtomicMetrics) Executed() uint64 {
	return m.executed.Load()
}

// Queued returns the current number of queued tasks.
func (m *AtomicMetrics) Queued() int64 {
	return m.queued.Load()
}

// Submitted returns the total number of accepted submissions.
func (m *AtomicMetrics) Submitted() uint64 {
	return m.submitted.Load()
}

// Failed returns the total number of tasks that failed or panicked.
func (m *AtomicMetrics) Failed() uint64 {
	return m.failed.Load()
}

// Abandoned returns the total number of tasks dropped at shutdown.
func (m *AtomicMetrics) Abandoned() uint64 {
	return m.abandoned.Load()
}

func (m *AtomicMetrics) IncQueued() {
	m.submitted.Add(1)
	m.queued.Add(1)
}

func (m *AtomicMetrics) BatchDecQueued(n int64) {
	m.queued.Add(-n)
}

func (m *AtomicMetrics) IncExecuted() {
	m.executed.Add(1)
}

func (m *AtomicMetrics) IncFailed() {
	m.failed.Add(1)
}

func (m *AtomicMetrics) AddAbandoned(n int64) {
	m.abandoned.Add(uint64(n))
}

//------------- NoopMetrics ----------------------------------

// NoopMetrics is a MetricsPolicy implementation that discards
// all metric updates.
type NoopMetrics struct{}

func (m *NoopMetrics) IncQueued()             {}
func (m *NoopMetrics) BatchDecQueued(n int64) {}
func (m *NoopMetrics) IncExecuted()           {}
func (m *NoopMetrics) IncFailed()             {}
func (m *NoopMetrics) AddAbandoned(n int64)   {}
