package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// AddContext appends a context entry to a session. Entries are never
// updated or deduplicated.
func (db *DB) AddContext(ctx context.Context, sessionID uuid.UUID, source, content string) (*ContextData, error) {
	var cd ContextData
	err := db.pool.QueryRow(ctx,
		`INSERT INTO context_data (session_id, source, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, session_id, source, content`,
		sessionID, source, content,
	).Scan(&cd.ID, &cd.SessionID, &cd.Source, &cd.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to add context: %w", err)
	}
	return &cd, nil
}

// ListContext retrieves a session's context entries in insertion order
func (db *DB) ListContext(ctx context.Context, sessionID uuid.UUID) ([]ContextData, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, session_id, source, content FROM context_data
		 WHERE session_id = $1 ORDER BY created_at ASC`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list context: %w", err)
	}
	defer rows.Close()

	var entries []ContextData
	for rows.Next() {
		var cd ContextData
		if err := rows.Scan(&cd.ID, &cd.SessionID, &cd.Source, &cd.Content); err != nil {
			return nil, fmt.Errorf("failed to scan context: %w", err)
		}
		entries = append(entries, cd)
	}
	return entries, nil
}
