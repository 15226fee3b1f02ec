package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated account owning sessions and resumes
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// Resume holds the parsed text of an uploaded resume. Only the latest resume
// per user feeds interview prompts.
type Resume struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	FilePath      string    `json:"file_path"`
	ParsedContent string    `json:"parsed_content"`
}
