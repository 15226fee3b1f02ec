// Package interview implements the session orchestration engine: the
// session/step state machine, the time-budgeted conversation loop, and the
// two-agent evaluation pipeline.
package interview

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/calebtran/interview-agent/internal/db"
	"github.com/calebtran/interview-agent/internal/llm"
	"github.com/calebtran/interview-agent/internal/queue"
	"github.com/calebtran/interview-agent/internal/roadmap"
	"github.com/calebtran/interview-agent/internal/strategy"
)

// openingMessage seeds the model's first turn of a session.
const openingMessage = "Hello"

// externalContextLimit caps stored content from scraped URLs.
const externalContextLimit = 5000

// Gateway is the retrying AI invocation boundary the engine talks to.
type Gateway interface {
	Invoke(ctx context.Context, prompt string) llm.Result
	Evaluate(ctx context.Context, prompt string) llm.Result
}

// ContextCollector is the web/discussion search collaborator. All methods
// return empty text on failure.
type ContextCollector interface {
	ScrapeURL(ctx context.Context, url string) string
	ScrapeReddit(ctx context.Context, query string) string
	SearchCompany(ctx context.Context, companyName string) string
}

// Enqueuer hands research tasks to the background worker queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, task queue.Task) error
}

// Engine orchestrates interview sessions. It is the sole writer of session
// and step lifecycle state on the live request path.
type Engine struct {
	store      Store
	gateway    Gateway
	strategies *strategy.Selector
	collector  ContextCollector
	tasks      Enqueuer
	now        func() time.Time
	locks      sync.Map // session id -> *sync.Mutex
}

// lockSession serializes mutating operations per session so concurrent
// turns cannot lose log entries through read-modify-write interleaving.
func (e *Engine) lockSession(sessionID uuid.UUID) func() {
	v, _ := e.locks.LoadOrStore(sessionID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock replaces the time source (used in tests).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine wires the orchestration engine. collector and tasks may be nil:
// enrichment is then skipped and research requests fail fast.
func NewEngine(store Store, gateway Gateway, strategies *strategy.Selector, collector ContextCollector, tasks Enqueuer, opts ...Option) *Engine {
	e := &Engine{
		store:      store,
		gateway:    gateway,
		strategies: strategies,
		collector:  collector,
		tasks:      tasks,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start begins a session: one-shot company enrichment, activation of the
// screening step, and the model's opening turn against the literal
// "Hello" user message.
func (e *Engine) Start(ctx context.Context, sessionID uuid.UUID) error {
	defer e.lockSession(sessionID)()

	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}

	// One-shot enrichment: only when nothing has been collected yet and the
	// company is a real value, not the creation placeholder.
	if e.collector != nil && session.HasCompany() {
		existing, err := e.store.ListContext(ctx, sessionID)
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			if info := e.collector.SearchCompany(ctx, session.CompanyName); info != "" {
				if _, err := e.store.AddContext(ctx, sessionID, db.SourceCompanySearch, info); err != nil {
					return err
				}
			}
		}
	}

	steps, err := e.store.ListSteps(ctx, sessionID)
	if err != nil {
		return err
	}

	for i := range steps {
		step := &steps[i]
		if step.StepType != db.StepTypeScreening {
			continue
		}
		if step.Status != db.StepStatusPending {
			break
		}

		e.activate(step)

		contextStr, err := e.buildContextString(ctx, session)
		if err != nil {
			return err
		}

		prompt := e.strategies.For(step.StepType).Prompt(ctx, contextStr, nil, openingMessage, session.RoleLevel)
		prompt += roadmapInstruction(nil, 0)

		result := e.gateway.Invoke(ctx, prompt)
		processed := roadmap.Extract(result.Text)
		if processed.Found {
			step.Roadmap = processed.Items
		}
		step.AppendLog(db.RoleAssistant, processed.Visible)

		if err := e.store.UpdateStep(ctx, step); err != nil {
			return err
		}
		break
	}

	return e.store.SetSessionStatus(ctx, sessionID, db.SessionStatusInProgress)
}

// Interact runs one conversation turn against a step and returns the
// visible assistant reply. Past the step's deadline it returns the fixed
// end-of-time message without calling the model.
func (e *Engine) Interact(ctx context.Context, sessionID, stepID uuid.UUID, message string) (string, error) {
	defer e.lockSession(sessionID)()

	step, err := e.store.GetStep(ctx, stepID)
	if err != nil {
		return "", err
	}
	if step == nil {
		return "", ErrStepNotFound
	}

	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if session == nil {
		return "", ErrSessionNotFound
	}

	// The pre-append history length decides whether this is the step's very
	// first turn (roadmap emission is only requested then).
	priorTurns := len(historyLines(step.InteractionLog))

	step.AppendLog(db.RoleUser, message)

	start := session.CreatedAt
	if step.StartedAt != nil {
		start = *step.StartedAt
	}

	budget := computeTimeBudget(e.now(), start, session.DurationMinutes)
	if budget.expired {
		step.AppendLog(db.RoleAssistant, EndOfTimeMessage)
		if err := e.store.UpdateStep(ctx, step); err != nil {
			return "", err
		}
		return EndOfTimeMessage, nil
	}

	contextStr, err := e.buildContextString(ctx, session)
	if err != nil {
		return "", err
	}

	history := lastN(historyLines(step.InteractionLog), historyWindow)

	prompt := e.strategies.For(step.StepType).Prompt(ctx, contextStr, history, message, session.RoleLevel)
	prompt += timeInstruction(budget.remaining)
	prompt += roadmapInstruction(step.Roadmap, priorTurns)

	result := e.gateway.Invoke(ctx, prompt)

	processed := roadmap.Extract(result.Text)
	if processed.Found {
		step.Roadmap = processed.Items
	}
	step.AppendLog(db.RoleAssistant, processed.Visible)
	step.Status = db.StepStatusInProgress

	if err := e.store.UpdateStep(ctx, step); err != nil {
		return "", err
	}
	return processed.Visible, nil
}

// Complete finishes a step: the two-agent evaluation pipeline, activation
// of the next pending step in canonical order, and session completion when
// none remains. The Bar Raiser critique alone is returned; the combined
// text is what gets persisted.
func (e *Engine) Complete(ctx context.Context, sessionID, stepID uuid.UUID) (string, error) {
	defer e.lockSession(sessionID)()

	step, err := e.store.GetStep(ctx, stepID)
	if err != nil {
		return "", err
	}
	if step == nil {
		return "", ErrStepNotFound
	}

	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if session == nil {
		return "", ErrSessionNotFound
	}

	contextStr, err := e.buildContextString(ctx, session)
	if err != nil {
		return "", err
	}
	history := historyLines(step.InteractionLog)

	// Agent 1: Bar Raiser, the stage-specific technical critique.
	barRaiser := e.gateway.Evaluate(ctx, e.strategies.For(step.StepType).Evaluate(contextStr, history)).Text

	// Agent 2: Hiring Manager, hireability-focused, aligned with agent 1.
	hiringManager := e.gateway.Evaluate(ctx, strategy.HiringManagerPrompt(contextStr, history, barRaiser)).Text

	combined := fmt.Sprintf("%s\n\n---\n\n%s", barRaiser, hiringManager)
	step.Feedback = &combined
	step.Status = db.StepStatusCompleted
	if err := e.store.UpdateStep(ctx, step); err != nil {
		return "", err
	}

	if err := e.activateNext(ctx, sessionID); err != nil {
		return "", err
	}
	return barRaiser, nil
}

// activateNext activates the first pending step in canonical order, or
// marks the session completed when none remains.
func (e *Engine) activateNext(ctx context.Context, sessionID uuid.UUID) error {
	steps, err := e.store.ListSteps(ctx, sessionID)
	if err != nil {
		return err
	}

	for i := range steps {
		if steps[i].Status == db.StepStatusPending {
			e.activate(&steps[i])
			return e.store.UpdateStep(ctx, &steps[i])
		}
	}

	return e.store.SetSessionStatus(ctx, sessionID, db.SessionStatusCompleted)
}

// activate transitions a pending step to in_progress. started_at is set
// once and never cleared.
func (e *Engine) activate(step *db.Step) {
	step.Status = db.StepStatusInProgress
	if step.StartedAt == nil {
		now := e.now()
		step.StartedAt = &now
	}
}

// Close marks a session completed on explicit request.
func (e *Engine) Close(ctx context.Context, sessionID uuid.UUID) error {
	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}
	return e.store.SetSessionStatus(ctx, sessionID, db.SessionStatusCompleted)
}

// RequestResearch validates the session and enqueues both background
// research jobs. The jobs run out-of-band; callers poll research status.
func (e *Engine) RequestResearch(ctx context.Context, sessionID uuid.UUID) error {
	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}
	if !session.HasCompany() {
		return ErrMissingCompany
	}
	if session.JobTitle == "" {
		return ErrMissingJobTitle
	}

	for _, kind := range []queue.TaskKind{queue.TaskInterviewResearch, queue.TaskContextResearch} {
		task := queue.Task{
			Kind:      kind,
			SessionID: sessionID,
			Company:   session.CompanyName,
			Role:      session.JobTitle,
		}
		if err := e.tasks.Enqueue(ctx, task); err != nil {
			return fmt.Errorf("failed to enqueue %s: %w", kind, err)
		}
	}

	return e.store.SetResearchStatus(ctx, sessionID, db.ResearchStatusPending)
}

// AddURLContext scrapes a page and stores it as a context entry. An empty
// scrape is surfaced to the caller: they asked for this exact URL.
func (e *Engine) AddURLContext(ctx context.Context, sessionID uuid.UUID, url string) (*db.ContextData, error) {
	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	content := e.collector.ScrapeURL(ctx, url)
	if content == "" {
		return nil, ErrScrapeFailed
	}

	return e.store.AddContext(ctx, sessionID, url, truncate(content, externalContextLimit))
}

// AddRedditContext searches discussions and stores the digest as a context
// entry. An empty digest is stored as-is: discussion search is best-effort.
func (e *Engine) AddRedditContext(ctx context.Context, sessionID uuid.UUID, query string) (*db.ContextData, error) {
	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	content := e.collector.ScrapeReddit(ctx, query)
	return e.store.AddContext(ctx, sessionID, "Reddit: "+query, content)
}
