package workerpool

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/azargarov/threadpool/thread"
)

// DefaultSize is the worker count used by DefaultOptions.
const DefaultSize = 1

// Options configure a worker Pool.
//
// Zero values of Logger, Metrics and SpawnRetry are replaced with defaults
// in FillDefaults. Size is taken literally: zero is a valid pool that
// accepts tasks but never runs them.
type Options struct {
	// Size is the fixed number of worker threads.
	Size int

	// Thread configures every worker thread.
	Thread thread.Params

	// SpawnRetry controls retries when a worker thread cannot be created
	// because the thread limit was reached.
	SpawnRetry RetryPolicy

	// Logger receives pool lifecycle events.
	Logger *zap.Logger

	// Metrics observes queueing and execution. Must be safe for
	// concurrent use.
	Metrics MetricsPolicy

	// OnTaskError, if set, is called from the worker with every error
	// returned or panicked by a task, in addition to the task's future.
	OnTaskError func(error)
}

// DefaultOptions returns a single-worker configuration with diagnostics
// enabled.
func DefaultOptions() Options {
	o := Options{
		Size:   DefaultSize,
		Thread: thread.DefaultParams(),
	}
	o.FillDefaults()
	return o
}

func (o *Options) FillDefaults() {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Metrics == nil {
		o.Metrics = &NoopMetrics{}
	}
	o.SpawnRetry.fillDefaults()
}

// Validate reports every invalid option.
func (o Options) Validate() error {
	var err error
	if o.Size < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: %d", ErrInvalidSize, o.Size))
	}
	err = multierr.Append(err, o.Thread.Validate())
	err = multierr.Append(err, o.SpawnRetry.validate())
	return err
}
