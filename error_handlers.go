package workerpool

import (
	"go.uber.org/zap"
)

// reportTaskError reports an error returned by a task or produced by
// panic recovery.
//
// Task errors never stop a worker. They are delivered to the task's
// future and, if configured, to OnTaskError.
func (p *Pool) reportTaskError(err error) {
	p.metrics.IncFailed()
	if p.opts.OnTaskError != nil {
		p.opts.OnTaskError(err)
	}
}

// reportInternalError logs a failure of the pool itself, such as a worker
// thread that could not be spawned.
func (p *Pool) reportInternalError(msg string, err error) {
	p.log.Error(msg, zap.Error(err))
}
