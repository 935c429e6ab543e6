package thread

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// MinStackSize is the smallest accepted stack size hint in bytes.
const MinStackSize = 16 << 10

// Params configure thread creation.
type Params struct {
	// StackSize is a stack size hint in bytes. Zero means unset.
	//
	// Goroutine stacks grow on demand, so the hint is validated and
	// reported by Thread.StackSize but does not bound the stack.
	StackSize int

	// PrintErrors enables human readable diagnostics for failures
	// reported by create, join and detach.
	PrintErrors bool

	// Affinity pins the OS thread to the listed CPUs before the work
	// starts. Empty means no pinning.
	Affinity []int

	// Logger receives diagnostics when PrintErrors is set.
	// A console logger writing to stderr is used when nil.
	Logger *zap.Logger
}

// DefaultParams returns the parameters used by New.
func DefaultParams() Params {
	return Params{PrintErrors: true}
}

// Validate reports every invalid field.
func (p Params) Validate() error {
	var err error
	if p.StackSize < 0 || (p.StackSize > 0 && p.StackSize < MinStackSize) {
		err = multierr.Append(err, fmt.Errorf("%w: stack size %d, minimum is %d", ErrInvalidParams, p.StackSize, MinStackSize))
	}
	for _, cpu := range p.Affinity {
		if cpu < 0 {
			err = multierr.Append(err, fmt.Errorf("%w: cpu %d", ErrInvalidParams, cpu))
		}
	}
	return err
}

func (p Params) logger() *zap.Logger {
	if !p.PrintErrors {
		return zap.NewNop()
	}
	if p.Logger != nil {
		return p.Logger
	}
	return stderrLogger()
}

var (
	stderrOnce sync.Once
	stderrLog  *zap.Logger
)

// stderrLogger is shared by diagnostics and by the fatal ownership check.
func stderrLogger() *zap.Logger {
	stderrOnce.Do(func() {
		enc := zap.NewDevelopmentEncoderConfig()
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stderr), zap.DebugLevel)
		stderrLog = zap.New(core).Named("thread")
	})
	return stderrLog
}
