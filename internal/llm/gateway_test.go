package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClient fails a configured number of times before succeeding.
type fakeClient struct {
	failures int
	calls    int
	text     string
}

func (f *fakeClient) GenerateContent(_ context.Context, _ string, _ ModelTier) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", errors.New("quota exceeded")
	}
	return f.text, nil
}

func (f *fakeClient) GenerateGrounded(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return f.GenerateContent(ctx, prompt, tier)
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return f.GenerateContent(ctx, prompt, tier)
}

func (f *fakeClient) GetModel(_ ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                { return nil }

func TestGatewaySucceedsFirstAttempt(t *testing.T) {
	client := &fakeClient{text: "hello candidate"}
	gw := NewGateway(client, WithSleep(func(time.Duration) {}))

	res := gw.Invoke(context.Background(), "prompt")
	assert.Equal(t, "hello candidate", res.Text)
	assert.False(t, res.Degraded)
	assert.Equal(t, 1, res.Attempts)
}

func TestGatewayRetriesWithBackoff(t *testing.T) {
	client := &fakeClient{failures: 2, text: "finally"}
	var sleeps []time.Duration
	gw := NewGateway(client, WithSleep(func(d time.Duration) { sleeps = append(sleeps, d) }))

	res := gw.Invoke(context.Background(), "prompt")
	assert.Equal(t, "finally", res.Text)
	assert.False(t, res.Degraded)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, []time.Duration{2 * time.Second, 3 * time.Second}, sleeps)
}

func TestGatewayTotalFailureReturnsBusySentinel(t *testing.T) {
	client := &fakeClient{failures: 10}
	gw := NewGateway(client, WithSleep(func(time.Duration) {}))

	res := gw.Invoke(context.Background(), "prompt")
	assert.Equal(t, BusyResponse, res.Text)
	assert.True(t, res.Degraded)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, 3, client.calls)
}

func TestGatewayEvaluateUsesEvaluationSentinel(t *testing.T) {
	client := &fakeClient{failures: 10}
	gw := NewGateway(client, WithSleep(func(time.Duration) {}))

	res := gw.Evaluate(context.Background(), "prompt")
	assert.Equal(t, BusyEvaluation, res.Text)
	assert.True(t, res.Degraded)
}

func TestGatewayWithoutClientReturnsMock(t *testing.T) {
	gw := NewGateway(nil)

	res := gw.Invoke(context.Background(), "prompt")
	assert.Equal(t, MockResponse, res.Text)
	assert.True(t, res.Degraded)
	assert.Equal(t, 0, res.Attempts)

	eval := gw.Evaluate(context.Background(), "prompt")
	assert.Equal(t, MockEvaluation, eval.Text)
	assert.Equal(t, 0, eval.Attempts)
}
