package thread

import (
	"sync"
	"sync/atomic"
)

// DefaultMaxThreads matches the Go runtime's default thread limit.
const DefaultMaxThreads = 10000

var registry = struct {
	mu   sync.Mutex
	live int
	max  int
}{max: DefaultMaxThreads}

var nextHandle atomic.Uint64

// SetMaxThreads sets the limit on live managed threads and returns the
// previous limit. Live threads are never affected; the limit applies to
// creation only. n <= 0 refuses every new thread.
func SetMaxThreads(n int) int {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	prev := registry.max
	registry.max = n
	return prev
}

// Live returns the number of managed threads whose context has not exited,
// detached ones included.
func Live() int {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return registry.live
}

func reserve() (Handle, error) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if registry.live >= registry.max {
		return 0, ErrResourceExhausted
	}
	registry.live++
	return Handle(nextHandle.Add(1)), nil
}

func unreserve() {
	registry.mu.Lock()
	registry.live--
	registry.mu.Unlock()
}
