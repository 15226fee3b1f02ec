package interview

import (
	"context"

	"github.com/google/uuid"

	"github.com/calebtran/interview-agent/internal/db"
)

// Store is the persistence contract the engine mutates. *db.DB satisfies
// it; tests use an in-memory implementation. The engine is the sole writer
// of session status, research status, interaction logs, roadmaps, and
// feedback: it only appends and transitions, never deletes.
type Store interface {
	GetSession(ctx context.Context, sessionID uuid.UUID) (*db.Session, error)
	SetSessionStatus(ctx context.Context, sessionID uuid.UUID, status string) error
	SetResearchStatus(ctx context.Context, sessionID uuid.UUID, status string) error

	GetStep(ctx context.Context, stepID uuid.UUID) (*db.Step, error)
	ListSteps(ctx context.Context, sessionID uuid.UUID) ([]db.Step, error)
	UpdateStep(ctx context.Context, step *db.Step) error

	AddContext(ctx context.Context, sessionID uuid.UUID, source, content string) (*db.ContextData, error)
	ListContext(ctx context.Context, sessionID uuid.UUID) ([]db.ContextData, error)
	LatestResume(ctx context.Context, userID uuid.UUID) (*db.Resume, error)
}
