package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const sessionColumns = `id, user_id, job_title, company_name, jd_content, role_level,
	duration_minutes, status, research_status, research_data, created_at`

// CreateSession inserts a session with the standard defaults and returns it
func (db *DB) CreateSession(ctx context.Context, userID uuid.UUID) (*Session, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO sessions (user_id, job_title, company_name, jd_content, role_level, duration_minutes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+sessionColumns,
		userID, DefaultJobTitle, DefaultCompanyName, DefaultJDContent, DefaultRoleLevel, DefaultDurationMinutes,
	)
	session, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Seed the fixed four-stage topology in canonical order
	for _, stepType := range CanonicalStepOrder {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO session_steps (session_id, step_type) VALUES ($1, $2)`,
			session.ID, stepType,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s step: %w", stepType, err)
		}
	}

	return session, nil
}

// GetSession retrieves a session by ID. Returns nil when absent.
func (db *DB) GetSession(ctx context.Context, sessionID uuid.UUID) (*Session, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, sessionID)
	session, err := scanSession(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// ListSessionsByUser retrieves all sessions owned by a user, newest first
func (db *DB) ListSessionsByUser(ctx context.Context, userID uuid.UUID) ([]Session, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *session)
	}
	return sessions, nil
}

// UpdateSessionFields applies a partial update of the mutable session fields
func (db *DB) UpdateSessionFields(ctx context.Context, sessionID uuid.UUID, update SessionUpdate) (*Session, error) {
	query := `UPDATE sessions SET id = id`
	args := []any{}
	argNum := 1

	if update.RoleLevel != nil {
		query += fmt.Sprintf(", role_level = $%d", argNum)
		args = append(args, *update.RoleLevel)
		argNum++
	}
	if update.DurationMinutes != nil {
		query += fmt.Sprintf(", duration_minutes = $%d", argNum)
		args = append(args, *update.DurationMinutes)
		argNum++
	}
	if update.CompanyName != nil {
		query += fmt.Sprintf(", company_name = $%d", argNum)
		args = append(args, *update.CompanyName)
		argNum++
	}
	if update.JobTitle != nil {
		query += fmt.Sprintf(", job_title = $%d", argNum)
		args = append(args, *update.JobTitle)
		argNum++
	}

	query += fmt.Sprintf(" WHERE id = $%d RETURNING "+sessionColumns, argNum)
	args = append(args, sessionID)

	session, err := scanSession(db.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	return session, nil
}

// SetSessionStatus transitions the session lifecycle status
func (db *DB) SetSessionStatus(ctx context.Context, sessionID uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE sessions SET status = $1 WHERE id = $2`, status, sessionID)
	if err != nil {
		return fmt.Errorf("failed to set session status: %w", err)
	}
	return nil
}

// SetResearchStatus transitions the research lifecycle status
func (db *DB) SetResearchStatus(ctx context.Context, sessionID uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE sessions SET research_status = $1 WHERE id = $2`, status, sessionID)
	if err != nil {
		return fmt.Errorf("failed to set research status: %w", err)
	}
	return nil
}

// SaveResearchData stores the research payload and marks research completed
// in a single write, so a crash between the two cannot leave a completed
// status without data.
func (db *DB) SaveResearchData(ctx context.Context, sessionID uuid.UUID, data *ResearchData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal research data: %w", err)
	}
	_, err = db.pool.Exec(ctx,
		`UPDATE sessions SET research_data = $1, research_status = $2 WHERE id = $3`,
		payload, ResearchStatusCompleted, sessionID)
	if err != nil {
		return fmt.Errorf("failed to save research data: %w", err)
	}
	return nil
}

// scanSession scans a session row including the JSONB research payload
func scanSession(row pgx.Row) (*Session, error) {
	var s Session
	var researchData []byte
	err := row.Scan(&s.ID, &s.UserID, &s.JobTitle, &s.CompanyName, &s.JDContent,
		&s.RoleLevel, &s.DurationMinutes, &s.Status, &s.ResearchStatus,
		&researchData, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(researchData) > 0 {
		var data ResearchData
		if err := json.Unmarshal(researchData, &data); err == nil {
			s.ResearchData = &data
		}
	}
	return &s, nil
}
