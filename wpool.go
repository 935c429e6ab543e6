package workerpool

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/azargarov/threadpool/thread"
)

// Pool is a fixed set of worker threads draining a shared FIFO of tasks.
//
// A pool must be shut down with Join, Shutdown or Close; otherwise its
// worker threads stay blocked waiting for work.
type Pool struct {
	opts    Options
	id      string
	log     *zap.Logger
	metrics MetricsPolicy

	threads []*thread.Thread

	// stop is set once, while holding mu, and never cleared. Workers read
	// it without the lock to decide whether to keep looping.
	stop atomic.Bool

	// mu protects queue and is the lock of both conditions.
	mu    sync.Mutex
	queue *taskQueue
	// pushed is signalled when a task is queued or stop is set.
	pushed *sync.Cond
	// drained is signalled when a worker pops the last pending task.
	drained *sync.Cond

	// joinMu serializes joiners, so drained has at most one waiter.
	joinMu sync.Mutex
	joined bool
}

// New starts a pool of opts.Size worker threads.
//
// If a worker cannot be spawned, the workers already started are stopped
// and the spawn failures are returned.
func New(opts Options) (*Pool, error) {
	opts.FillDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	p := &Pool{
		opts:    opts,
		id:      uuid.NewString(),
		metrics: opts.Metrics,
		queue:   newTaskQueue(),
		threads: make([]*thread.Thread, 0, opts.Size),
	}
	p.log = opts.Logger.With(zap.String("pool", p.id))
	p.pushed = sync.NewCond(&p.mu)
	p.drained = sync.NewCond(&p.mu)

	var spawnErr error
	for range opts.Size {
		th, err := opts.SpawnRetry.spawn(opts.Thread, thread.Method((*Pool).worker, p))
		if err != nil {
			spawnErr = multierr.Append(spawnErr, err)
			break
		}
		p.threads = append(p.threads, th)
	}
	if spawnErr != nil {
		p.reportInternalError("worker spawn failed", spawnErr)
		p.Join(false)
		return nil, spawnErr
	}

	p.log.Debug("pool started", zap.Int("size", opts.Size))
	return p, nil
}

// NewSize starts a pool of size workers with default options.
func NewSize(size int) (*Pool, error) {
	opts := DefaultOptions()
	opts.Size = size
	return New(opts)
}

// ID returns the identifier attached to the pool's log entries.
func (p *Pool) ID() string { return p.id }

// Size returns the fixed worker count.
func (p *Pool) Size() int { return len(p.threads) }

// QSize returns the number of pending tasks. The value is a snapshot and
// is advisory only.
func (p *Pool) QSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Len()
}

// Submit queues work and wakes one idle worker. It never blocks on task
// execution.
func (p *Pool) Submit(work thread.Func) (*Future, error) {
	if work == nil {
		return nil, ErrNilFunc
	}
	return p.submit(nil, func(context.Context) error {
		work()
		return nil
	})
}

// SubmitFunc queues fn; the error it returns is delivered by the future.
func (p *Pool) SubmitFunc(fn func() error) (*Future, error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	return p.submit(nil, func(context.Context) error { return fn() })
}

// SubmitContext queues fn with ctx.
//
// If ctx is done by the time a worker dequeues the task, fn is skipped and
// the future resolves with ctx.Err(). Failures are logged through the
// logger carried by ctx.
func (p *Pool) SubmitContext(ctx context.Context, fn func(context.Context) error) (*Future, error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return p.submit(ctx, fn)
}

func (p *Pool) submit(ctx context.Context, fn func(context.Context) error) (*Future, error) {
	t := &task{fn: fn, ctx: ctx, fut: newFuture()}

	p.mu.Lock()
	if p.stop.Load() {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	p.queue.Push(t)
	p.metrics.IncQueued()
	p.pushed.Signal()
	p.mu.Unlock()

	return t.fut, nil
}

// Join shuts the pool down.
//
// With drain set, Join first waits until no task is pending. Tasks already
// dequeued may still be running at that point; Join then stops the workers
// and waits for their threads, so every started task has finished when
// Join returns.
//
// Without drain, queued tasks are abandoned and their futures resolve with
// ErrAbandoned.
//
// Join is idempotent. A size 0 pool never drains, so Join(true) on it
// blocks forever; use Shutdown with a deadline instead.
func (p *Pool) Join(drain bool) {
	_ = p.join(context.Background(), drain)
}

// Shutdown drains and joins the pool. If ctx is done before the queue is
// empty, Shutdown returns ctx.Err() and the pool keeps running.
func (p *Pool) Shutdown(ctx context.Context) error {
	return p.join(ctx, true)
}

// Close joins the pool without draining, if it was not joined already.
func (p *Pool) Close() {
	p.Join(false)
}

func (p *Pool) join(ctx context.Context, drain bool) error {
	p.joinMu.Lock()
	defer p.joinMu.Unlock()

	if p.joined {
		return nil
	}
	if drain {
		if err := p.awaitDrained(ctx); err != nil {
			return err
		}
	}

	p.mu.Lock()
	p.stop.Store(true)
	p.pushed.Broadcast()
	p.mu.Unlock()

	for _, th := range p.threads {
		th.Join()
	}

	// Workers are gone and submit rejects new tasks; nothing else touches
	// the queue.
	p.mu.Lock()
	left := p.queue.Drain()
	p.mu.Unlock()
	p.abandon(left)

	p.joined = true
	p.log.Debug("pool joined", zap.Bool("drain", drain), zap.Int("abandoned", len(left)))
	return nil
}

func (p *Pool) awaitDrained(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.queue.Len() == 0 {
		return nil
	}

	stop := context.AfterFunc(ctx, func() {
		p.mu.Lock()
		p.drained.Broadcast()
		p.mu.Unlock()
	})
	defer stop()

	for p.queue.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.drained.Wait()
	}
	return nil
}

// worker is the loop run by every pool thread.
func (p *Pool) worker() {
	for !p.stop.Load() {
		if t, ok := p.dequeue(); ok {
			p.run(t)
		}
		p.wait()
	}
}

func (p *Pool) dequeue() (*task, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, ok := p.queue.Pop()
	if !ok {
		return nil, false
	}
	if p.queue.Len() == 0 {
		p.drained.Signal()
	}
	p.metrics.BatchDecQueued(1)
	return t, true
}

// wait blocks until a task is pending or stop is set.
func (p *Pool) wait() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for p.queue.Len() == 0 && !p.stop.Load() {
		p.pushed.Wait()
	}
}
