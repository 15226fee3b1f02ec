package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateUser inserts a user account
func (db *DB) CreateUser(ctx context.Context, email, hashedPassword string) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (email, hashed_password)
		 VALUES ($1, $2)
		 RETURNING id, email, hashed_password, created_at`,
		email, hashedPassword,
	).Scan(&u.ID, &u.Email, &u.HashedPassword, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u, nil
}

// GetUserByEmail retrieves a user by email. Returns nil when absent.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`SELECT id, email, hashed_password, created_at FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.HashedPassword, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// SaveResume stores an uploaded resume's location and parsed text
func (db *DB) SaveResume(ctx context.Context, userID uuid.UUID, filePath, parsedContent string) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, file_path, parsed_content)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, file_path, parsed_content`,
		userID, filePath, parsedContent,
	).Scan(&r.ID, &r.UserID, &r.FilePath, &r.ParsedContent)
	if err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return &r, nil
}

// LatestResume retrieves the most recently uploaded resume for a user.
// Returns nil when the user has none.
func (db *DB) LatestResume(ctx context.Context, userID uuid.UUID) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, file_path, parsed_content FROM resumes
		 WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`,
		userID,
	).Scan(&r.ID, &r.UserID, &r.FilePath, &r.ParsedContent)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest resume: %w", err)
	}
	return &r, nil
}
