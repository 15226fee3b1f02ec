package interview

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/calebtran/interview-agent/internal/db"
)

// memStore is an in-memory Store for engine tests.
type memStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*db.Session
	steps    map[uuid.UUID]*db.Step
	order    map[uuid.UUID][]uuid.UUID // session -> step ids in canonical order
	contexts map[uuid.UUID][]db.ContextData
	resumes  map[uuid.UUID]*db.Resume
}

func newMemStore() *memStore {
	return &memStore{
		sessions: make(map[uuid.UUID]*db.Session),
		steps:    make(map[uuid.UUID]*db.Step),
		order:    make(map[uuid.UUID][]uuid.UUID),
		contexts: make(map[uuid.UUID][]db.ContextData),
		resumes:  make(map[uuid.UUID]*db.Resume),
	}
}

// addSession stores the session and seeds its four steps in canonical order.
func (m *memStore) addSession(s *db.Session) []*db.Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	var created []*db.Step
	for _, stepType := range db.CanonicalStepOrder {
		step := &db.Step{
			ID:        uuid.New(),
			SessionID: s.ID,
			StepType:  stepType,
			Status:    db.StepStatusPending,
		}
		m.steps[step.ID] = step
		m.order[s.ID] = append(m.order[s.ID], step.ID)
		created = append(created, step)
	}
	return created
}

func (m *memStore) GetSession(_ context.Context, sessionID uuid.UUID) (*db.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (m *memStore) SetSessionStatus(_ context.Context, sessionID uuid.UUID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sessionID]; ok {
		s.Status = status
	}
	return nil
}

func (m *memStore) SetResearchStatus(_ context.Context, sessionID uuid.UUID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sessionID]; ok {
		s.ResearchStatus = status
	}
	return nil
}

func (m *memStore) GetStep(_ context.Context, stepID uuid.UUID) (*db.Step, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.steps[stepID]
	if !ok {
		return nil, nil
	}
	copied := *s
	copied.InteractionLog = append([]db.LogEntry(nil), s.InteractionLog...)
	copied.Roadmap = append([]string(nil), s.Roadmap...)
	return &copied, nil
}

func (m *memStore) ListSteps(_ context.Context, sessionID uuid.UUID) ([]db.Step, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var steps []db.Step
	for _, id := range m.order[sessionID] {
		steps = append(steps, *m.steps[id])
	}
	return steps, nil
}

func (m *memStore) UpdateStep(_ context.Context, step *db.Step) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *step
	m.steps[step.ID] = &copied
	return nil
}

func (m *memStore) AddContext(_ context.Context, sessionID uuid.UUID, source, content string) (*db.ContextData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := db.ContextData{ID: uuid.New(), SessionID: sessionID, Source: source, Content: content}
	m.contexts[sessionID] = append(m.contexts[sessionID], entry)
	return &entry, nil
}

func (m *memStore) ListContext(_ context.Context, sessionID uuid.UUID) ([]db.ContextData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]db.ContextData(nil), m.contexts[sessionID]...), nil
}

func (m *memStore) LatestResume(_ context.Context, userID uuid.UUID) (*db.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resumes[userID]
	if !ok {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}
