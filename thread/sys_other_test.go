//go:build !linux

package thread_test

func currentTID() int {
	return 1
}
