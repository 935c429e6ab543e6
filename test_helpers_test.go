package workerpool_test

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	wp "github.com/azargarov/threadpool"
)

var (
	emptyWork = func() {}

	cpuWork = func() {
		x := 0
		for i := range 1000 {
			x += i * i
		}
		_ = x
	}

	sleepWork = func() {
		time.Sleep(time.Millisecond)
	}
)

// increment mirrors the slow counting task used to make shutdown races
// deterministic: it takes long enough that a non-draining join always
// finds queued work.
func increment(count *atomic.Int64) {
	time.Sleep(time.Millisecond)
	count.Add(1)
}

type counter struct {
	count atomic.Int64
}

func (c *counter) inc() {
	c.count.Add(1)
}

type functor struct {
	count *atomic.Int64
}

func (f functor) Run() {
	f.count.Add(1)
}

func newTestPool(t testing.TB, size int) *wp.Pool {
	t.Helper()

	opts := wp.DefaultOptions()
	opts.Size = size
	opts.Thread.PrintErrors = false

	p, err := wp.New(opts)
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	return p
}

func waitUntil(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		runtime.Gosched()
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not satisfied before timeout")
}
