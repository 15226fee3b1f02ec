package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const stepColumns = `id, session_id, step_type, status, interaction_log, feedback, started_at, roadmap`

// GetStep retrieves a step by ID. Returns nil when absent.
func (db *DB) GetStep(ctx context.Context, stepID uuid.UUID) (*Step, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+stepColumns+` FROM session_steps WHERE id = $1`, stepID)
	step, err := scanStep(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get step: %w", err)
	}
	return step, nil
}

// ListSteps retrieves a session's steps in canonical stage order
func (db *DB) ListSteps(ctx context.Context, sessionID uuid.UUID) ([]Step, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+stepColumns+` FROM session_steps WHERE session_id = $1
		 ORDER BY array_position(ARRAY['screening','behavioral','technical','system_design'], step_type)`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list steps: %w", err)
	}
	defer rows.Close()

	var steps []Step
	for rows.Next() {
		step, err := scanStep(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		steps = append(steps, *step)
	}
	return steps, nil
}

// UpdateStep persists a step's mutable fields (status, log, roadmap,
// feedback, started_at) together in one write.
func (db *DB) UpdateStep(ctx context.Context, step *Step) error {
	logJSON, err := json.Marshal(step.InteractionLog)
	if err != nil {
		return fmt.Errorf("failed to marshal interaction log: %w", err)
	}

	var roadmapJSON []byte
	if step.Roadmap != nil {
		roadmapJSON, err = json.Marshal(step.Roadmap)
		if err != nil {
			return fmt.Errorf("failed to marshal roadmap: %w", err)
		}
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE session_steps
		 SET status = $1, interaction_log = $2, feedback = $3, started_at = $4, roadmap = $5
		 WHERE id = $6`,
		step.Status, logJSON, step.Feedback, step.StartedAt, roadmapJSON, step.ID)
	if err != nil {
		return fmt.Errorf("failed to update step: %w", err)
	}
	return nil
}

// scanStep scans a step row including the JSONB log and roadmap
func scanStep(row pgx.Row) (*Step, error) {
	var s Step
	var logJSON, roadmapJSON []byte
	var startedAt *time.Time
	err := row.Scan(&s.ID, &s.SessionID, &s.StepType, &s.Status, &logJSON,
		&s.Feedback, &startedAt, &roadmapJSON)
	if err != nil {
		return nil, err
	}
	s.StartedAt = startedAt
	if len(logJSON) > 0 {
		if err := json.Unmarshal(logJSON, &s.InteractionLog); err != nil {
			return nil, fmt.Errorf("corrupt interaction log: %w", err)
		}
	}
	if len(roadmapJSON) > 0 {
		if err := json.Unmarshal(roadmapJSON, &s.Roadmap); err != nil {
			return nil, fmt.Errorf("corrupt roadmap: %w", err)
		}
	}
	return &s, nil
}
