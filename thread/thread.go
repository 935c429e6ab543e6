package thread

import (
	"runtime"
	"slices"

	"go.uber.org/zap"
)

// Handle is an opaque, process-unique identifier of a live thread context.
type Handle uint64

// noCopy may be embedded into structs which must not be copied after first use.
// See https://golang.org/issues/8005#issuecomment-190753527.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// osThread is the state shared between a Thread and the goroutine running
// its work. The goroutine writes id once, before the start handshake.
type osThread struct {
	handle Handle
	id     int
	done   chan struct{}
}

// owner is the current ownership of a live context. It is the object the
// abort-on-collection finalizer is attached to; the running goroutine never
// references it, so it becomes unreachable together with the Thread.
type owner struct {
	ctx *osThread
}

// Thread owns at most one native OS thread. The zero value is an empty,
// non-joinable Thread.
type Thread struct {
	noCopy noCopy

	own       *owner
	err       error
	stackSize int
	log       *zap.Logger
}

// New starts fn on a new OS thread using DefaultParams.
func New(fn Func) *Thread {
	return NewWithParams(DefaultParams(), fn)
}

// NewWithParams starts fn on a new OS thread.
//
// If the thread cannot be created the returned Thread is not joinable and
// Err reports why. Callers must check Joinable before relying on it.
func NewWithParams(p Params, fn Func) *Thread {
	t := &Thread{
		stackSize: p.StackSize,
		log:       p.logger(),
	}
	t.create(p, fn)
	return t
}

func (t *Thread) create(p Params, fn Func) {
	if fn == nil {
		t.fail("create", ErrNilFunc)
		return
	}
	if err := p.Validate(); err != nil {
		t.fail("create", err)
		return
	}
	h, err := reserve()
	if err != nil {
		t.fail("create", err)
		return
	}

	ctx := &osThread{handle: h, done: make(chan struct{})}
	started := make(chan error, 1)
	go ctx.run(slices.Clone(p.Affinity), fn, started)

	if err := <-started; err != nil {
		<-ctx.done
		t.fail("create", err)
		return
	}

	o := &owner{ctx: ctx}
	runtime.SetFinalizer(o, finalizeOwner)
	t.own = o
}

func (c *osThread) run(affinity []int, fn Func, started chan<- error) {
	// Never unlocked: the OS thread exits with this goroutine.
	runtime.LockOSThread()
	defer close(c.done)
	defer unreserve()

	c.id = gettid()
	if len(affinity) > 0 {
		if err := pin(affinity); err != nil {
			started <- err
			return
		}
	}
	started <- nil

	fn()
}

// Joinable reports whether t owns a live context that has not been joined
// or detached.
func (t *Thread) Joinable() bool {
	return t.own != nil
}

// Err returns the reason the thread could not be created, if any.
func (t *Thread) Err() error {
	return t.err
}

// StackSize returns the stack size hint the thread was created with.
func (t *Thread) StackSize() int {
	return t.stackSize
}

// ID returns the OS thread id reported by the running context.
func (t *Thread) ID() (int, error) {
	if !t.Joinable() {
		return 0, ErrNotJoinable
	}
	return t.own.ctx.id, nil
}

// NativeHandle returns the opaque handle of the running context.
func (t *Thread) NativeHandle() (Handle, error) {
	if !t.Joinable() {
		return 0, ErrNotJoinable
	}
	return t.own.ctx.handle, nil
}

// Join blocks until the context has exited. It is a no-op if t is not
// joinable. After Join returns t is never joinable.
//
// Joining from the thread's own context is reported as ErrDeadlock and
// returns without waiting.
func (t *Thread) Join() {
	if !t.Joinable() {
		return
	}
	ctx := t.own.ctx
	select {
	case <-ctx.done:
	default:
		if canDetectSelfJoin && gettid() == ctx.id {
			t.report("join", ErrDeadlock)
			break
		}
		<-ctx.done
	}
	t.disown()
}

// Detach relinquishes ownership without waiting. The context keeps running
// and its resources are reclaimed when it exits.
func (t *Thread) Detach() {
	if !t.Joinable() {
		return
	}
	t.disown()
}

// Move transfers the context of t to a new Thread and leaves t empty.
func (t *Thread) Move() *Thread {
	n := &Thread{
		own:       t.own,
		err:       t.err,
		stackSize: t.stackSize,
		log:       t.log,
	}
	t.own, t.err = nil, nil
	return n
}

// MoveFrom transfers the context of src into t and leaves src empty.
// Moving into a joinable Thread aborts the process like Release does.
func (t *Thread) MoveFrom(src *Thread) {
	if t == src {
		return
	}
	if t.Joinable() {
		abort("move into a joinable thread", t.own.ctx)
	}
	t.own, t.err, t.stackSize, t.log = src.own, src.err, src.stackSize, src.log
	src.own, src.err = nil, nil
}

// Release ends the lifetime of t. It aborts the process if t is still
// joinable.
func (t *Thread) Release() {
	if t.Joinable() {
		abort("thread released while joinable", t.own.ctx)
	}
}

func (t *Thread) disown() {
	o := t.own
	t.own = nil
	o.ctx = nil
	runtime.SetFinalizer(o, nil)
}

func (t *Thread) fail(op string, err error) {
	t.err = err
	t.report(op, err)
}

func (t *Thread) report(op string, err error) {
	if t.log == nil {
		return
	}
	t.log.Error("thread "+op+" failed", zap.Error(err))
}

func finalizeOwner(o *owner) {
	if o.ctx != nil {
		abort("thread collected while joinable", o.ctx)
	}
}

func abort(msg string, ctx *osThread) {
	stderrLogger().Fatal(msg,
		zap.Uint64("handle", uint64(ctx.handle)),
		zap.Int("tid", ctx.id),
	)
}
