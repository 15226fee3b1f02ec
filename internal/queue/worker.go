package queue

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"
)

// Handler processes one task. Errors are logged and do not stop the worker.
type Handler func(ctx context.Context, task Task) error

// Worker drains a Queue with a fixed number of concurrent consumers.
type Worker struct {
	queue       Queue
	handle      Handler
	concurrency int
}

// NewWorker builds a worker. concurrency values below 1 are clamped to 1.
func NewWorker(q Queue, handle Handler, concurrency int) *Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Worker{queue: q, handle: handle, concurrency: concurrency}
}

// Run consumes tasks until ctx is cancelled. A failing task is logged and
// the consumer moves on; only transport errors stop the loop.
func (w *Worker) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < w.concurrency; i++ {
		g.Go(func() error {
			for {
				task, err := w.queue.Dequeue(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					return err
				}
				log.Printf("[Worker] Processing %s for session %s", task.Kind, task.SessionID)
				if err := w.process(ctx, task); err != nil {
					log.Printf("[Worker] Task %s failed for session %s: %v", task.Kind, task.SessionID, err)
				}
			}
		})
	}
	return g.Wait()
}

// process runs one task, converting a handler panic into an error so a bad
// task cannot take down the consumer.
func (w *Worker) process(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return w.handle(ctx, task)
}
