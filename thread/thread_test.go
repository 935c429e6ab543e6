package thread_test

import (
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/azargarov/threadpool/thread"
)

// -----------------------------------------------------------------------------
// Call shapes
// -----------------------------------------------------------------------------

func TestCallShapes(t *testing.T) {
	tests := []struct {
		name string
		fn   func(t *testing.T)
	}{
		{"Lambda", testLambda},
		{"FreeFunction", testFreeFunction},
		{"MemberFunction", testMemberFunction},
		{"MemberFunctionWithArgs", testMemberFunctionWithArgs},
		{"Functor", testFunctor},
		{"BoundArguments", testBoundArguments},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.fn)
	}
}

func testLambda(t *testing.T) {
	count := 0
	th := thread.New(func() {
		for range 100 {
			count++
		}
	})
	if !th.Joinable() {
		t.Fatalf("thread not joinable: %v", th.Err())
	}

	th.Join()
	if count != 100 {
		t.Fatalf("count = %d; want 100", count)
	}
	if th.Joinable() {
		t.Fatal("thread joinable after Join")
	}
}

func testFreeFunction(t *testing.T) {
	count := 0
	th := thread.New(thread.Bind1(countTo100, &count))
	if !th.Joinable() {
		t.Fatalf("thread not joinable: %v", th.Err())
	}

	th.Join()
	if count != 100 {
		t.Fatalf("count = %d; want 100", count)
	}
	if th.Joinable() {
		t.Fatal("thread joinable after Join")
	}
}

func testMemberFunction(t *testing.T) {
	var c counter
	th := thread.New(thread.Method((*counter).bar, &c))
	if !th.Joinable() {
		t.Fatalf("thread not joinable: %v", th.Err())
	}

	th.Join()
	if c.count != 100 {
		t.Fatalf("count = %d; want 100", c.count)
	}
}

func testMemberFunctionWithArgs(t *testing.T) {
	var c counter
	th1 := thread.New(thread.Method1((*counter).add, &c, 40))
	th1.Join()
	th2 := thread.New(thread.Method2((*counter).addTwice, &c, 1, 1))
	th2.Join()

	if c.count != 42 {
		t.Fatalf("count = %d; want 42", c.count)
	}
}

func testFunctor(t *testing.T) {
	count := 0
	th := thread.New(thread.Functor(functor{count: &count}))
	th.Join()

	if count != 100 {
		t.Fatalf("count = %d; want 100", count)
	}
}

func testBoundArguments(t *testing.T) {
	var got struct {
		a int
		b string
		c bool
	}
	th := thread.New(thread.Bind3(func(a int, b string, c bool) {
		got.a, got.b, got.c = a, b, c
	}, 7, "seven", true))
	th.Join()

	if got.a != 7 || got.b != "seven" || !got.c {
		t.Fatalf("bound arguments = %+v", got)
	}

	calls := 0
	th = thread.New(thread.Bind2(func(n *int, by int) { *n += by }, &calls, 1))
	th.Join()
	if calls != 1 {
		t.Fatalf("calls = %d; want 1", calls)
	}
}

func TestBindNil(t *testing.T) {
	if thread.Bind(nil) != nil || thread.Bind1[int](nil, 1) != nil || thread.Functor(nil) != nil {
		t.Fatal("binding nil must produce a nil Func")
	}

	th := thread.New(nil)
	if th.Joinable() {
		t.Fatal("thread with nil func is joinable")
	}
	if !errors.Is(th.Err(), thread.ErrNilFunc) {
		t.Fatalf("err = %v; want ErrNilFunc", th.Err())
	}
}

// -----------------------------------------------------------------------------
// Ownership
// -----------------------------------------------------------------------------

func TestDefaultConstructed(t *testing.T) {
	var th thread.Thread
	if th.Joinable() {
		t.Fatal("zero Thread is joinable")
	}

	th.Join()
	th.Detach()
	th.Release()

	if _, err := th.ID(); !errors.Is(err, thread.ErrNotJoinable) {
		t.Fatalf("ID err = %v; want ErrNotJoinable", err)
	}
	if _, err := th.NativeHandle(); !errors.Is(err, thread.ErrNotJoinable) {
		t.Fatalf("NativeHandle err = %v; want ErrNotJoinable", err)
	}
}

func TestMove(t *testing.T) {
	var t1 thread.Thread
	if t1.Joinable() {
		t.Fatal("t1 joinable before move")
	}

	t2 := thread.New(func() {})
	if !t2.Joinable() {
		t.Fatalf("t2 not joinable: %v", t2.Err())
	}
	h, _ := t2.NativeHandle()

	t1.MoveFrom(t2)
	if !t1.Joinable() {
		t.Fatal("t1 not joinable after move")
	}
	if t2.Joinable() {
		t.Fatal("t2 joinable after move")
	}
	if got, _ := t1.NativeHandle(); got != h {
		t.Fatalf("handle = %d; want %d", got, h)
	}

	t3 := t1.Move()
	if t1.Joinable() || !t3.Joinable() {
		t.Fatal("Move did not transfer joinability")
	}

	t3.Join()
	t3.Release()
}

func TestIDAndHandle(t *testing.T) {
	var alive atomic.Bool
	alive.Store(true)

	var observed atomic.Int64
	th := thread.New(func() {
		observed.Store(int64(currentTID()))
		for alive.Load() {
			time.Sleep(time.Millisecond)
		}
	})
	if !th.Joinable() {
		t.Fatalf("thread not joinable: %v", th.Err())
	}

	id, err := th.ID()
	if err != nil {
		t.Fatalf("ID: %v", err)
	}
	h, err := th.NativeHandle()
	if err != nil || h == 0 {
		t.Fatalf("NativeHandle = %d, %v", h, err)
	}

	waitUntil(t, time.Second, func() bool { return observed.Load() != 0 })
	if want := observed.Load(); runtime.GOOS == "linux" && int64(id) != want {
		t.Fatalf("ID = %d; thread observed %d", id, want)
	}

	alive.Store(false)
	th.Join()

	if _, err := th.ID(); !errors.Is(err, thread.ErrNotJoinable) {
		t.Fatalf("ID after Join err = %v; want ErrNotJoinable", err)
	}
	if _, err := th.NativeHandle(); !errors.Is(err, thread.ErrNotJoinable) {
		t.Fatalf("NativeHandle after Join err = %v; want ErrNotJoinable", err)
	}
}

func TestDistinctOSThreads(t *testing.T) {
	const n = 8

	release := make(chan struct{})
	threads := make([]*thread.Thread, 0, n)
	ids := make(map[int]bool, n)
	for range n {
		th := thread.New(func() { <-release })
		id, err := th.ID()
		if err != nil {
			t.Fatalf("ID: %v", err)
		}
		ids[id] = true
		threads = append(threads, th)
	}
	close(release)
	for _, th := range threads {
		th.Join()
	}

	if runtime.GOOS == "linux" && len(ids) != n {
		t.Fatalf("distinct ids = %d; want %d", len(ids), n)
	}
}

func TestHundredThreads(t *testing.T) {
	work := func(count *atomic.Int64) {
		for range 100 {
			time.Sleep(100 * time.Microsecond)
		}
		count.Add(1)
	}

	t.Run("Joined", func(t *testing.T) {
		var count atomic.Int64
		threads := make([]*thread.Thread, 0, 100)
		for range 100 {
			th := thread.New(thread.Bind1(work, &count))
			threads = append(threads, th.Move())
		}
		for _, th := range threads {
			th.Join()
		}
		if got := count.Load(); got != 100 {
			t.Fatalf("count = %d; want 100", got)
		}
	})

	t.Run("Detached", func(t *testing.T) {
		var count atomic.Int64
		for range 100 {
			th := thread.New(thread.Bind1(work, &count))
			th.Detach()
			if th.Joinable() {
				t.Fatal("joinable after Detach")
			}
			th.Release()
		}
		waitUntil(t, 10*time.Second, func() bool { return count.Load() == 100 })
	})
}

// -----------------------------------------------------------------------------
// Parameters and diagnostics
// -----------------------------------------------------------------------------

func TestWithParameters(t *testing.T) {
	const twoMB = 1 << 21

	flag := false
	th := thread.NewWithParams(thread.Params{StackSize: twoMB}, func() {
		for range 100 {
			flag = !flag
		}
	})
	if !th.Joinable() {
		t.Fatalf("thread not joinable: %v", th.Err())
	}
	if got := th.StackSize(); got != twoMB {
		t.Fatalf("StackSize = %d; want %d", got, twoMB)
	}
	th.Join()
}

func TestInvalidParams(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	ran := false
	th := thread.NewWithParams(thread.Params{
		StackSize:   1,
		Affinity:    []int{-1},
		PrintErrors: true,
		Logger:      zap.New(core),
	}, func() { ran = true })

	if th.Joinable() {
		th.Join()
		t.Fatal("thread with invalid params is joinable")
	}
	if ran {
		t.Fatal("work ran despite invalid params")
	}
	if !errors.Is(th.Err(), thread.ErrInvalidParams) {
		t.Fatalf("err = %v; want ErrInvalidParams", th.Err())
	}
	if got := logs.FilterMessage("thread create failed").Len(); got != 1 {
		t.Fatalf("diagnostics logged = %d; want 1", got)
	}
}

func TestDiagnosticsSilenced(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	th := thread.NewWithParams(thread.Params{
		StackSize:   1,
		PrintErrors: false,
		Logger:      zap.New(core),
	}, func() {})

	if th.Joinable() {
		th.Join()
		t.Fatal("thread with invalid params is joinable")
	}
	if logs.Len() != 0 {
		t.Fatalf("diagnostics logged with PrintErrors off: %d", logs.Len())
	}
}

func TestResourceExhausted(t *testing.T) {
	prev := thread.SetMaxThreads(0)
	defer thread.SetMaxThreads(prev)

	th := thread.NewWithParams(thread.Params{}, func() {})
	if th.Joinable() {
		th.Join()
		t.Fatal("thread created beyond the limit")
	}
	if !errors.Is(th.Err(), thread.ErrResourceExhausted) {
		t.Fatalf("err = %v; want ErrResourceExhausted", th.Err())
	}
}

func TestLiveAccounting(t *testing.T) {
	before := thread.Live()

	release := make(chan struct{})
	th := thread.New(func() { <-release })
	if got := thread.Live(); got < before+1 {
		t.Fatalf("Live = %d; want at least %d", got, before+1)
	}

	close(release)
	th.Join()
	waitUntil(t, time.Second, func() bool { return thread.Live() <= before })
}

func TestHardwareConcurrency(t *testing.T) {
	if got, want := thread.HardwareConcurrency(), runtime.NumCPU(); got != want {
		t.Fatalf("HardwareConcurrency = %d; want %d", got, want)
	}
}
