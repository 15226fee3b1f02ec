package research

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebtran/interview-agent/internal/db"
	"github.com/calebtran/interview-agent/internal/llm"
	"github.com/calebtran/interview-agent/internal/queue"
)

type fakeStore struct {
	statuses []string
	saved    *db.ResearchData
	contexts []db.ContextData
}

func (f *fakeStore) SetResearchStatus(_ context.Context, _ uuid.UUID, status string) error {
	f.statuses = append(f.statuses, status)
	return nil
}

func (f *fakeStore) SaveResearchData(_ context.Context, _ uuid.UUID, data *db.ResearchData) error {
	f.saved = data
	f.statuses = append(f.statuses, db.ResearchStatusCompleted)
	return nil
}

func (f *fakeStore) AddContext(_ context.Context, sessionID uuid.UUID, source, content string) (*db.ContextData, error) {
	entry := db.ContextData{ID: uuid.New(), SessionID: sessionID, Source: source, Content: content}
	f.contexts = append(f.contexts, entry)
	return &entry, nil
}

// fakeLLM scripts the grounded and JSON generation paths independently.
type fakeLLM struct {
	groundedText string
	groundedErr  error
	jsonText     string
	jsonErr      error
	groundedHits int
	jsonHits     int
}

func (f *fakeLLM) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return "", errors.New("unexpected ungrounded call")
}

func (f *fakeLLM) GenerateGrounded(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	f.groundedHits++
	return f.groundedText, f.groundedErr
}

func (f *fakeLLM) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	f.jsonHits++
	return f.jsonText, f.jsonErr
}

func (f *fakeLLM) GetModel(_ llm.ModelTier) string { return "fake-model" }
func (f *fakeLLM) Close() error                    { return nil }

func loadSchema(t *testing.T) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join("..", "..", "schemas", "research_result.schema.json"))
	require.NoError(t, err)
	return string(content)
}

const validResult = `{"description": "Four rounds over two weeks.", "steps": [{"type": "screening", "title": "Recruiter Screen", "description": "30 minute call"}]}`

const genericResult = `{"description": "This is a generic industry-standard process.", "steps": [{"type": "technical", "title": "Coding Round", "description": "Algorithms"}]}`

func newTask() queue.Task {
	return queue.Task{
		Kind:      queue.TaskInterviewResearch,
		SessionID: uuid.New(),
		Company:   "Acme",
		Role:      "Backend Engineer",
	}
}

func TestInterviewResearchGroundedSuccess(t *testing.T) {
	store := &fakeStore{}
	client := &fakeLLM{groundedText: validResult}
	runner := NewRunner(store, client, loadSchema(t))

	require.NoError(t, runner.RunInterviewResearch(context.Background(), newTask()))

	assert.Equal(t, []string{db.ResearchStatusProcessing, db.ResearchStatusCompleted}, store.statuses)
	require.NotNil(t, store.saved)
	assert.Equal(t, "Four rounds over two weeks.", store.saved.Description)
	require.Len(t, store.saved.Steps, 1)
	assert.Equal(t, "screening", store.saved.Steps[0].Type)
	assert.Zero(t, client.jsonHits)
}

func TestInterviewResearchStripsMarkdownFence(t *testing.T) {
	store := &fakeStore{}
	client := &fakeLLM{groundedText: "```json\n" + validResult + "\n```"}
	runner := NewRunner(store, client, loadSchema(t))

	require.NoError(t, runner.RunInterviewResearch(context.Background(), newTask()))
	require.NotNil(t, store.saved)
	assert.Equal(t, "Four rounds over two weeks.", store.saved.Description)
}

func TestInterviewResearchFallsBackOnInsufficientData(t *testing.T) {
	store := &fakeStore{}
	client := &fakeLLM{
		groundedText: `{"error": "insufficient_data"}`,
		jsonText:     genericResult,
	}
	runner := NewRunner(store, client, loadSchema(t))

	require.NoError(t, runner.RunInterviewResearch(context.Background(), newTask()))

	assert.Equal(t, 1, client.groundedHits)
	assert.Equal(t, 1, client.jsonHits)
	require.NotNil(t, store.saved)
	assert.Contains(t, store.saved.Description, "generic industry-standard")
}

func TestInterviewResearchFallsBackOnEmptySteps(t *testing.T) {
	store := &fakeStore{}
	client := &fakeLLM{
		groundedText: `{"description": "Could not determine the process.", "steps": []}`,
		jsonText:     genericResult,
	}
	runner := NewRunner(store, client, loadSchema(t))

	require.NoError(t, runner.RunInterviewResearch(context.Background(), newTask()))
	assert.Equal(t, 1, client.jsonHits)
	require.NotNil(t, store.saved)
}

func TestInterviewResearchFailureLeavesNoPartialData(t *testing.T) {
	store := &fakeStore{}
	client := &fakeLLM{groundedErr: errors.New("quota exceeded")}
	runner := NewRunner(store, client, loadSchema(t))

	err := runner.RunInterviewResearch(context.Background(), newTask())
	require.Error(t, err)
	assert.Equal(t, []string{db.ResearchStatusProcessing, db.ResearchStatusFailed}, store.statuses)
	assert.Nil(t, store.saved)
}

func TestInterviewResearchFailsWhenFallbackInvalid(t *testing.T) {
	store := &fakeStore{}
	client := &fakeLLM{
		groundedText: `{"error": "insufficient_data"}`,
		jsonText:     `{"steps": [{"title": "missing fields"}]}`,
	}
	runner := NewRunner(store, client, loadSchema(t))

	err := runner.RunInterviewResearch(context.Background(), newTask())
	require.Error(t, err)
	assert.Equal(t, []string{db.ResearchStatusProcessing, db.ResearchStatusFailed}, store.statuses)
	assert.Nil(t, store.saved)
}

func TestContextResearchAppendsEntry(t *testing.T) {
	store := &fakeStore{}
	client := &fakeLLM{groundedText: "## Values\nCustomer obsession."}
	runner := NewRunner(store, client, "")
	task := newTask()
	task.Kind = queue.TaskContextResearch

	require.NoError(t, runner.Handle(context.Background(), task))

	require.Len(t, store.contexts, 1)
	assert.Equal(t, db.SourceAgentResearch, store.contexts[0].Source)
	assert.Equal(t, "## Values\nCustomer obsession.", store.contexts[0].Content)
	// Context research never touches the research status lifecycle.
	assert.Empty(t, store.statuses)
}

func TestContextResearchIgnoresEmptyDigest(t *testing.T) {
	store := &fakeStore{}
	client := &fakeLLM{groundedText: "   \n"}
	runner := NewRunner(store, client, "")
	task := newTask()
	task.Kind = queue.TaskContextResearch

	require.NoError(t, runner.RunContextResearch(context.Background(), task))
	assert.Empty(t, store.contexts)
}

func TestHandleRejectsUnknownKind(t *testing.T) {
	runner := NewRunner(&fakeStore{}, &fakeLLM{}, "")
	task := newTask()
	task.Kind = "reticulate_splines"

	err := runner.Handle(context.Background(), task)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown task kind")
}
