package interview

import "errors"

// Domain errors surfaced to callers. Synchronous-path errors propagate and
// abort with no state change; AI-provider failures never appear here (the
// gateway absorbs them into degraded text).
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrStepNotFound    = errors.New("step not found")
	ErrMissingCompany  = errors.New("company name is required for research")
	ErrMissingJobTitle = errors.New("job title is required for research")
	ErrScrapeFailed    = errors.New("failed to scrape URL")
)
