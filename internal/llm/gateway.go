package llm

import (
	"context"
	"log"
	"time"
)

// Canned responses returned by the gateway when the provider cannot serve a
// request. Callers never see a hard failure: a conversation always receives
// some text.
const (
	MockResponse      = "Gemini API Key not configured. Mock response."
	MockEvaluation    = "Gemini API Key not configured. Mock evaluation."
	BusyResponse      = "Sorry, the AI service is currently busy. Please try again later."
	BusyEvaluation    = "Evaluation unavailable due to high traffic."
	defaultMaxRetries = 3
)

// Result is the tagged outcome of a gateway call. The external contract is
// plain text (the Text field), but Degraded and Attempts stay visible so the
// retry behavior can be asserted on without parsing strings.
type Result struct {
	Text     string
	Degraded bool
	Attempts int
}

// Gateway wraps a generative client with bounded retry and
// degrade-to-sentinel behavior for the live interview loop.
type Gateway struct {
	client      Client // nil when no API key is configured
	invokeTier  ModelTier
	evalTier    ModelTier
	maxAttempts int
	sleep       func(time.Duration)
}

// GatewayOption customizes a Gateway.
type GatewayOption func(*Gateway)

// WithSleep replaces the backoff sleep function (used in tests).
func WithSleep(fn func(time.Duration)) GatewayOption {
	return func(g *Gateway) { g.sleep = fn }
}

// WithMaxAttempts overrides the retry budget.
func WithMaxAttempts(n int) GatewayOption {
	return func(g *Gateway) { g.maxAttempts = n }
}

// NewGateway creates a gateway over client. A nil client means no provider
// credential is configured; every call then returns the mock sentinel with
// zero attempts.
func NewGateway(client Client, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		client:      client,
		invokeTier:  TierStandard,
		evalTier:    TierAdvanced,
		maxAttempts: defaultMaxRetries,
		sleep:       time.Sleep,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Invoke generates a conversation turn for the given prompt.
func (g *Gateway) Invoke(ctx context.Context, prompt string) Result {
	return g.generate(ctx, prompt, g.invokeTier, MockResponse, BusyResponse)
}

// Evaluate generates an evaluation critique for the given prompt.
func (g *Gateway) Evaluate(ctx context.Context, prompt string) Result {
	return g.generate(ctx, prompt, g.evalTier, MockEvaluation, BusyEvaluation)
}

// generate runs the bounded retry loop. Backoff after a failed attempt is
// (2^attempt)+1 seconds: 2, 3, 5. Provider errors are absorbed; the caller
// gets either the provider text or the degraded sentinel.
func (g *Gateway) generate(ctx context.Context, prompt string, tier ModelTier, mockText, busyText string) Result {
	if g.client == nil {
		return Result{Text: mockText, Degraded: true}
	}

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		text, err := g.client.GenerateContent(ctx, prompt, tier)
		if err == nil {
			return Result{Text: text, Attempts: attempt + 1}
		}

		wait := time.Duration(1<<attempt+1) * time.Second
		log.Printf("[gateway] attempt %d/%d failed, retrying in %s: %v", attempt+1, g.maxAttempts, wait, err)
		g.sleep(wait)
	}

	return Result{Text: busyText, Degraded: true, Attempts: g.maxAttempts}
}
