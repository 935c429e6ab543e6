//go:build linux

package thread

import (
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

const canDetectSelfJoin = true

func gettid() int {
	return unix.Gettid()
}

// pin restricts the calling OS thread to cpus. The caller must be locked
// to its OS thread.
func pin(cpus []int) error {
	var mask unix.CPUSet
	mask.Zero()
	for _, cpu := range cpus {
		mask.Set(cpu)
	}
	err := unix.SchedSetaffinity(0, &mask)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.EPERM):
		return fmt.Errorf("%w: %v", ErrPermission, err)
	case errors.Is(err, unix.EINVAL):
		return fmt.Errorf("%w: affinity %v: %v", ErrInvalidParams, cpus, err)
	default:
		return fmt.Errorf("thread: sched_setaffinity: %w", err)
	}
}

// HardwareConcurrency returns the number of processors available to the
// process.
func HardwareConcurrency() int {
	var mask unix.CPUSet
	if err := unix.SchedGetaffinity(0, &mask); err != nil {
		return runtime.NumCPU()
	}
	if n := mask.Count(); n > 0 {
		return n
	}
	return runtime.NumCPU()
}
