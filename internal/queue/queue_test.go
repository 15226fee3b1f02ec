package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryQueueFIFO(t *testing.T) {
	q := NewMemoryQueue(4)
	ctx := context.Background()

	first := Task{Kind: TaskInterviewResearch, SessionID: uuid.New(), Company: "Acme"}
	second := Task{Kind: TaskContextResearch, SessionID: first.SessionID, Company: "Acme"}
	require.NoError(t, q.Enqueue(ctx, first))
	require.NoError(t, q.Enqueue(ctx, second))

	got, err := q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	got, err = q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestMemoryQueueDequeueHonorsContext(t *testing.T) {
	q := NewMemoryQueue(1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := q.Dequeue(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWorkerProcessesTasks(t *testing.T) {
	q := NewMemoryQueue(8)
	ctx, cancel := context.WithCancel(context.Background())

	var mu sync.Mutex
	var seen []TaskKind
	done := make(chan struct{})
	handler := func(_ context.Context, task Task) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, task.Kind)
		if len(seen) == 2 {
			close(done)
		}
		return nil
	}

	worker := NewWorker(q, handler, 2)
	errCh := make(chan error, 1)
	go func() { errCh <- worker.Run(ctx) }()

	require.NoError(t, q.Enqueue(ctx, Task{Kind: TaskInterviewResearch, SessionID: uuid.New()}))
	require.NoError(t, q.Enqueue(ctx, Task{Kind: TaskContextResearch, SessionID: uuid.New()}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not process tasks in time")
	}

	cancel()
	assert.NoError(t, <-errCh)

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []TaskKind{TaskInterviewResearch, TaskContextResearch}, seen)
}

func TestWorkerSurvivesHandlerErrors(t *testing.T) {
	q := NewMemoryQueue(8)
	ctx, cancel := context.WithCancel(context.Background())

	processed := make(chan Task, 2)
	handler := func(_ context.Context, task Task) error {
		processed <- task
		if task.Kind == TaskInterviewResearch {
			return errors.New("research blew up")
		}
		return nil
	}

	worker := NewWorker(q, handler, 1)
	errCh := make(chan error, 1)
	go func() { errCh <- worker.Run(ctx) }()

	require.NoError(t, q.Enqueue(ctx, Task{Kind: TaskInterviewResearch, SessionID: uuid.New()}))
	require.NoError(t, q.Enqueue(ctx, Task{Kind: TaskContextResearch, SessionID: uuid.New()}))

	// The second task still runs after the first one fails.
	for i := 0; i < 2; i++ {
		select {
		case <-processed:
		case <-time.After(2 * time.Second):
			t.Fatal("worker stopped after a handler error")
		}
	}

	cancel()
	assert.NoError(t, <-errCh)
}
