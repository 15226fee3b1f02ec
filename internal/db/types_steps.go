package db

import (
	"time"

	"github.com/google/uuid"
)

// StepType values, in the canonical interview order
const (
	StepTypeScreening    = "screening"
	StepTypeBehavioral   = "behavioral"
	StepTypeTechnical    = "technical"
	StepTypeSystemDesign = "system_design"
)

// CanonicalStepOrder is the fixed stage topology of every session.
var CanonicalStepOrder = []string{
	StepTypeScreening,
	StepTypeBehavioral,
	StepTypeTechnical,
	StepTypeSystemDesign,
}

// StepStatus values for the step lifecycle
const (
	StepStatusPending    = "pending"
	StepStatusInProgress = "in_progress"
	StepStatusCompleted  = "completed"
)

// Interaction log entry roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// LogEntry is one entry of a step's append-only interaction log
type LogEntry struct {
	ID      uuid.UUID `json:"id"`
	Role    string    `json:"role"`
	Content string    `json:"content"`
}

// Step represents one stage of an interview session
type Step struct {
	ID             uuid.UUID  `json:"id"`
	SessionID      uuid.UUID  `json:"session_id"`
	StepType       string     `json:"step_type"`
	Status         string     `json:"status"`
	InteractionLog []LogEntry `json:"interaction_log"`
	Feedback       *string    `json:"feedback,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	Roadmap        []string   `json:"roadmap,omitempty"`
}

// AppendLog appends an entry with a fresh unique id and returns it.
func (s *Step) AppendLog(role, content string) LogEntry {
	entry := LogEntry{ID: uuid.New(), Role: role, Content: content}
	s.InteractionLog = append(s.InteractionLog, entry)
	return entry
}

// ValidStepType checks if a step type value is valid
func ValidStepType(stepType string) bool {
	switch stepType {
	case StepTypeScreening, StepTypeBehavioral, StepTypeTechnical, StepTypeSystemDesign:
		return true
	default:
		return false
	}
}

// ValidStepStatus checks if a step status value is valid
func ValidStepStatus(status string) bool {
	switch status {
	case StepStatusPending, StepStatusInProgress, StepStatusCompleted:
		return true
	default:
		return false
	}
}
