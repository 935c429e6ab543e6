package workerpool

import (
	"github.com/eapache/queue"
)

// taskQueue is the pool's FIFO of pending tasks, backed by a growable
// ring buffer. It is not safe for concurrent use; the pool guards it with
// its mutex.
type taskQueue struct {
	q *queue.Queue
}

func newTaskQueue() *taskQueue {
	return &taskQueue{q: queue.New()}
}

// Len returns the number of tasks waiting in the queue.
func (q *taskQueue) Len() int { return q.q.Length() }

// Push appends a task at the tail.
func (q *taskQueue) Push(t *task) {
	q.q.Add(t)
}

// Pop removes and returns the oldest task.
//
// If the queue is empty, returns nil and false.
func (q *taskQueue) Pop() (*task, bool) {
	if q.q.Length() == 0 {
		return nil, false
	}
	return q.q.Remove().(*task), true
}

// Drain removes every task in FIFO order.
func (q *taskQueue) Drain() []*task {
	out := make([]*task, 0, q.q.Length())
	for {
		t, ok := q.Pop()
		if !ok {
			return out
		}
		out = append(out, t)
	}
}
