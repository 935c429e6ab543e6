package thread_test

import (
	"runtime"
	"testing"
	"time"
)

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

func countTo100(count *int) {
	for range 100 {
		*count++
		time.Sleep(100 * time.Microsecond)
	}
}

type counter struct {
	count int
}

func (c *counter) bar() {
	countTo100(&c.count)
}

func (c *counter) add(n int) {
	c.count += n
}

func (c *counter) addTwice(n, m int) {
	c.count += n + m
}

type functor struct {
	count *int
}

func (f functor) Run() {
	countTo100(f.count)
}
