// Package research runs the background company-research jobs: the
// interview-process plan persisted onto a session, and the company context
// digest appended to its context entries.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/calebtran/interview-agent/internal/db"
	"github.com/calebtran/interview-agent/internal/llm"
	"github.com/calebtran/interview-agent/internal/queue"
	"github.com/calebtran/interview-agent/internal/schemas"
)

// insufficientDataMarker is how the model signals that grounded search
// found nothing usable about the company's process.
const insufficientDataMarker = "insufficient_data"

// Store is the persistence slice the research jobs need.
type Store interface {
	SetResearchStatus(ctx context.Context, sessionID uuid.UUID, status string) error
	SaveResearchData(ctx context.Context, sessionID uuid.UUID, data *db.ResearchData) error
	AddContext(ctx context.Context, sessionID uuid.UUID, source, content string) (*db.ContextData, error)
}

// Runner executes research tasks pulled off the queue.
type Runner struct {
	store  Store
	client llm.Client
	schema string
}

// NewRunner builds a task runner. schemaContent holds the JSON Schema the
// structured research result is validated against; empty skips validation.
func NewRunner(store Store, client llm.Client, schemaContent string) *Runner {
	return &Runner{store: store, client: client, schema: schemaContent}
}

// Handle dispatches one queue task. Satisfies queue.Handler.
func (r *Runner) Handle(ctx context.Context, task queue.Task) error {
	switch task.Kind {
	case queue.TaskInterviewResearch:
		return r.RunInterviewResearch(ctx, task)
	case queue.TaskContextResearch:
		return r.RunContextResearch(ctx, task)
	default:
		return fmt.Errorf("unknown task kind %q", task.Kind)
	}
}

// RunInterviewResearch researches the company's interview process and
// persists the structured plan. Status moves processing -> completed, or
// failed with no partial data on any error.
func (r *Runner) RunInterviewResearch(ctx context.Context, task queue.Task) error {
	if err := r.store.SetResearchStatus(ctx, task.SessionID, db.ResearchStatusProcessing); err != nil {
		return err
	}

	if r.client == nil {
		if err := r.store.SetResearchStatus(ctx, task.SessionID, db.ResearchStatusFailed); err != nil {
			return err
		}
		return fmt.Errorf("AI client not configured")
	}

	data, err := r.researchProcess(ctx, task.Company, task.Role)
	if err != nil {
		if statusErr := r.store.SetResearchStatus(ctx, task.SessionID, db.ResearchStatusFailed); statusErr != nil {
			log.Printf("[Research] Failed to mark session %s failed: %v", task.SessionID, statusErr)
		}
		return err
	}

	return r.store.SaveResearchData(ctx, task.SessionID, data)
}

// researchProcess tries a grounded search first, then falls back to a
// generic industry-standard plan when the model reports insufficient data.
func (r *Runner) researchProcess(ctx context.Context, company, role string) (*db.ResearchData, error) {
	raw, err := r.client.GenerateGrounded(ctx, groundedResearchPrompt(company, role), llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("grounded research failed: %w", err)
	}

	data, parseErr := r.parse(raw)
	if parseErr == nil && !insufficient(raw, data) {
		return data, nil
	}

	raw, err = r.client.GenerateJSON(ctx, genericResearchPrompt(role), llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("generic research failed: %w", err)
	}
	return r.parse(raw)
}

// parse cleans, schema-validates, and decodes a model response.
func (r *Runner) parse(raw string) (*db.ResearchData, error) {
	cleaned := llm.CleanJSONBlock(raw)

	if r.schema != "" {
		if err := schemas.ValidateJSONString(r.schema, cleaned); err != nil {
			return nil, fmt.Errorf("research result rejected: %w", err)
		}
	}

	var data db.ResearchData
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("failed to decode research result: %w", err)
	}
	if len(data.Steps) == 0 {
		return nil, fmt.Errorf("research result has no steps")
	}
	return &data, nil
}

// insufficient reports whether the grounded pass came back empty-handed.
func insufficient(raw string, data *db.ResearchData) bool {
	if data == nil || len(data.Steps) == 0 {
		return true
	}
	lower := strings.ToLower(raw)
	return strings.Contains(lower, insufficientDataMarker) ||
		strings.Contains(lower, "could not determine")
}

// RunContextResearch gathers company background and appends it as a
// context entry. Best-effort: the session keeps working without it.
func (r *Runner) RunContextResearch(ctx context.Context, task queue.Task) error {
	if r.client == nil {
		return fmt.Errorf("AI client not configured")
	}

	digest, err := r.client.GenerateGrounded(ctx, contextResearchPrompt(task.Company, task.Role), llm.TierStandard)
	if err != nil {
		return fmt.Errorf("context research failed: %w", err)
	}
	if strings.TrimSpace(digest) == "" {
		log.Printf("[Research] Empty context digest for session %s", task.SessionID)
		return nil
	}

	_, err = r.store.AddContext(ctx, task.SessionID, db.SourceAgentResearch, digest)
	return err
}

func groundedResearchPrompt(company, role string) string {
	return fmt.Sprintf(`Research the real interview process at %s for a %s position using web search.

Respond with ONLY a JSON object, no prose, in this exact shape:
{
  "description": "<summary of the overall process>",
  "steps": [
    {"type": "<round label, e.g. screening, behavioral, technical, system_design>", "title": "<round name>", "description": "<what happens in this round>"}
  ]
}

If you cannot find reliable information about this company's process, respond with exactly:
{"error": "%s"}
`, company, role, insufficientDataMarker)
}

func genericResearchPrompt(role string) string {
	return fmt.Sprintf(`Describe a generic industry-standard interview process for a %s position at a large technology company.

Respond with ONLY a JSON object in this exact shape:
{
  "description": "<summary, stating clearly that this is a generic industry-standard process>",
  "steps": [
    {"type": "<round label, e.g. screening, behavioral, technical, system_design>", "title": "<round name>", "description": "<what happens in this round>"}
  ]
}
`, role)
}

func contextResearchPrompt(company, role string) string {
	return fmt.Sprintf(`Research %s using web search and produce a briefing for a candidate interviewing for a %s position.

Cover, in Markdown sections:
- Company values and culture
- Technology stack and engineering practices
- Recent news and business direction
- Anything notable about how they interview

Keep it factual and concise.`, company, role)
}
