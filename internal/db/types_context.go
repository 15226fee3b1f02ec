package db

import "github.com/google/uuid"

// Well-known context sources. Sources are otherwise free-form labels
// (a URL, "Reddit: <query>").
const (
	SourceAgentResearch = "agent_research"
	SourceCompanySearch = "company_search"
)

// ContextData is one append-only context entry attached to a session
type ContextData struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	Source    string    `json:"source"`
	Content   string    `json:"content"`
}
