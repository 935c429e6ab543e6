package workerpool

import (
	"errors"
	"fmt"
	"time"

	boff "github.com/Andrej220/go-utils/backoff"

	"github.com/azargarov/threadpool/thread"
)

const (
	defaultAttempts     = 3
	defaultInitialRetry = 5 * time.Millisecond
	defaultMaxRetry     = 200 * time.Millisecond
)

// RetryPolicy describes how many times and how often spawning a worker
// thread is retried. Zero values are treated as "use pool defaults".
type RetryPolicy struct {
	// Attempts is the maximum number of tries per worker.
	Attempts int `yaml:"attempts"`

	// Initial is the first backoff duration.
	Initial time.Duration `yaml:"initial"`

	// Max is the cap for backoff duration.
	Max time.Duration `yaml:"max"`
}

// GetDefaultRP returns a pointer to the default spawn retry policy.
func GetDefaultRP() *RetryPolicy {
	rp := RetryPolicy{
		Attempts: defaultAttempts,
		Initial:  defaultInitialRetry,
		Max:      defaultMaxRetry,
	}
	return &rp
}

func (rp *RetryPolicy) fillDefaults() {
	if rp.Attempts <= 0 {
		rp.Attempts = defaultAttempts
	}
	if rp.Initial <= 0 {
		rp.Initial = defaultInitialRetry
	}
	if rp.Max <= 0 {
		rp.Max = defaultMaxRetry
	}
}

func (rp RetryPolicy) validate() error {
	if rp.Attempts < 0 || rp.Initial < 0 || rp.Max < 0 {
		return fmt.Errorf("workerpool: invalid spawn retry policy %+v", rp)
	}
	if rp.Max > 0 && rp.Initial > rp.Max {
		return fmt.Errorf("workerpool: spawn retry initial %v exceeds max %v", rp.Initial, rp.Max)
	}
	return nil
}

// spawn creates a worker thread, backing off while the thread limit is
// reached. Other creation errors are not retried.
func (rp RetryPolicy) spawn(params thread.Params, fn thread.Func) (*thread.Thread, error) {
	bo := boff.New(rp.Initial, rp.Max, time.Now().UnixNano())

	for attempt := 1; ; attempt++ {
		th := thread.NewWithParams(params, fn)
		if th.Joinable() {
			return th, nil
		}
		err := th.Err()
		if !errors.Is(err, thread.ErrResourceExhausted) || attempt >= rp.Attempts {
			return nil, fmt.Errorf("workerpool: spawn worker (attempt %d): %w", attempt, err)
		}
		time.Sleep(bo.Next())
	}
}
