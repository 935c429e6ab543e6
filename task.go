package workerpool

import (
	"context"
	"errors"
	"runtime/debug"

	lg "github.com/Andrej220/go-utils/zlog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/azargarov/threadpool"

// task is a unit of work plus its completion channel. It is executed by
// exactly one worker.
type task struct {
	fn  func(context.Context) error
	ctx context.Context // nil unless submitted with SubmitContext
	fut *Future
}

// call runs the task body, converting a panic into a *PanicError.
func (t *task) call(poolID string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	if t.ctx == nil {
		return t.fn(context.Background())
	}
	if err := t.ctx.Err(); err != nil {
		return err
	}

	ctx, span := otel.Tracer(tracerName).Start(t.ctx, "workerpool.task",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("workerpool.id", poolID)),
	)
	defer span.End()

	err = t.fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// run executes the task on the calling worker and resolves its future.
func (p *Pool) run(t *task) {
	err := t.call(p.id)
	if err != nil {
		var pe *PanicError
		if errors.As(err, &pe) {
			p.log.Warn("task panicked", zap.Any("panic", pe.Value))
		}
		if t.ctx != nil {
			lg.FromContext(t.ctx).Error("task failed", lg.String("pool", p.id), lg.Any("error", err))
		}
		p.reportTaskError(err)
	} else {
		p.metrics.IncExecuted()
	}
	t.fut.resolve(err)
}

// abandon resolves the futures of tasks that will never run.
func (p *Pool) abandon(tasks []*task) {
	if len(tasks) == 0 {
		return
	}
	for _, t := range tasks {
		t.fut.resolve(ErrAbandoned)
	}
	p.metrics.BatchDecQueued(int64(len(tasks)))
	p.metrics.AddAbandoned(int64(len(tasks)))
}
