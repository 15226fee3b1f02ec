// Package queue carries background research tasks from the API server to
// the worker process. Two implementations: a Redis list for deployments
// and an in-process channel for tests and single-binary runs.
package queue

import (
	"context"

	"github.com/google/uuid"
)

// TaskKind names a background job type.
type TaskKind string

const (
	// TaskInterviewResearch researches a company's interview process and
	// persists a structured plan onto the session.
	TaskInterviewResearch TaskKind = "interview_research"
	// TaskContextResearch gathers company background and appends it to the
	// session's context entries.
	TaskContextResearch TaskKind = "context_research"
)

// Task is one unit of background work.
type Task struct {
	Kind      TaskKind  `json:"kind"`
	SessionID uuid.UUID `json:"session_id"`
	Company   string    `json:"company"`
	Role      string    `json:"role"`
}

// Queue is a FIFO task transport.
type Queue interface {
	// Enqueue submits a task.
	Enqueue(ctx context.Context, task Task) error
	// Dequeue blocks until a task is available or ctx is done.
	Dequeue(ctx context.Context) (Task, error)
	// Close releases transport resources.
	Close() error
}
