package queue

import (
	"context"
	"errors"
)

// ErrClosed is returned when dequeuing from a closed in-memory queue.
var ErrClosed = errors.New("queue closed")

// MemoryQueue is a channel-backed Queue for tests and single-binary runs.
type MemoryQueue struct {
	tasks chan Task
}

// NewMemoryQueue creates an in-process queue with the given buffer size.
func NewMemoryQueue(size int) *MemoryQueue {
	return &MemoryQueue{tasks: make(chan Task, size)}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, task Task) error {
	select {
	case q.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context) (Task, error) {
	select {
	case task, ok := <-q.tasks:
		if !ok {
			return Task{}, ErrClosed
		}
		return task, nil
	case <-ctx.Done():
		return Task{}, ctx.Err()
	}
}

func (q *MemoryQueue) Close() error {
	close(q.tasks)
	return nil
}
