//go:build !linux

package thread

import (
	"errors"
	"runtime"
	"sync/atomic"
)

// Without gettid the id is allocated by the context itself, so a thread
// cannot recognise itself from the caller side.
const canDetectSelfJoin = false

var nextID atomic.Int64

func gettid() int {
	return int(nextID.Add(1))
}

var errPinUnsupported = errors.New("thread: cpu affinity is not supported on " + runtime.GOOS)

func pin(cpus []int) error {
	return errPinUnsupported
}

// HardwareConcurrency returns the number of processors available to the
// process.
func HardwareConcurrency() int {
	return runtime.NumCPU()
}
