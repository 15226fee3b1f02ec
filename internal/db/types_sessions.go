package db

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus values for the interview session lifecycle
const (
	SessionStatusPlanning   = "planning"
	SessionStatusReady      = "ready"
	SessionStatusInProgress = "in_progress"
	SessionStatusCompleted  = "completed"
)

// ResearchStatus values for the background research lifecycle.
// Transitions only pending -> processing -> {completed, failed}; a fresh
// research request resets completed/failed back to pending.
const (
	ResearchStatusPending    = "pending"
	ResearchStatusProcessing = "processing"
	ResearchStatusCompleted  = "completed"
	ResearchStatusFailed     = "failed"
)

// RoleLevel values for the target seniority of a session
const (
	RoleLevelJunior    = "junior"
	RoleLevelMid       = "mid"
	RoleLevelSenior    = "senior"
	RoleLevelStaff     = "staff"
	RoleLevelPrincipal = "principal"
	RoleLevelManager   = "manager"
)

// Session defaults applied at creation
const (
	DefaultJobTitle        = "Software Engineer"
	DefaultCompanyName     = "Pending"
	DefaultJDContent       = "Standard JD"
	DefaultRoleLevel       = RoleLevelMid
	DefaultDurationMinutes = 15
)

// ResearchStep is one round of a researched interview process
type ResearchStep struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ResearchData is the structured result of interview-process research
type ResearchData struct {
	Description string         `json:"description"`
	Steps       []ResearchStep `json:"steps"`
}

// Session represents an interview session record
type Session struct {
	ID              uuid.UUID     `json:"id"`
	UserID          uuid.UUID     `json:"user_id"`
	JobTitle        string        `json:"job_title"`
	CompanyName     string        `json:"company_name"`
	JDContent       string        `json:"jd_content"`
	RoleLevel       string        `json:"role_level"`
	DurationMinutes int           `json:"duration_minutes"`
	Status          string        `json:"status"`
	ResearchStatus  string        `json:"research_status"`
	ResearchData    *ResearchData `json:"research_data,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

// HasCompany reports whether the session names a real company rather than
// the creation-time placeholder.
func (s *Session) HasCompany() bool {
	return s.CompanyName != "" && s.CompanyName != DefaultCompanyName
}

// SessionUpdate holds the mutable session fields for PATCH requests.
// Nil fields are left unchanged.
type SessionUpdate struct {
	RoleLevel       *string `json:"role_level,omitempty" validate:"omitempty,oneof=junior mid senior staff principal manager"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=180"`
	CompanyName     *string `json:"company_name,omitempty"`
	JobTitle        *string `json:"job_title,omitempty"`
}

// ValidSessionStatus checks if a session status value is valid
func ValidSessionStatus(status string) bool {
	switch status {
	case SessionStatusPlanning, SessionStatusReady, SessionStatusInProgress, SessionStatusCompleted:
		return true
	default:
		return false
	}
}

// ValidResearchStatus checks if a research status value is valid
func ValidResearchStatus(status string) bool {
	switch status {
	case ResearchStatusPending, ResearchStatusProcessing, ResearchStatusCompleted, ResearchStatusFailed:
		return true
	default:
		return false
	}
}

// ValidRoleLevel checks if a role level value is valid
func ValidRoleLevel(level string) bool {
	switch level {
	case RoleLevelJunior, RoleLevelMid, RoleLevelSenior, RoleLevelStaff, RoleLevelPrincipal, RoleLevelManager:
		return true
	default:
		return false
	}
}
