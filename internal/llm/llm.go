// File path: internal/llm/llm.go
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Provider issues one chat-completion call per invocation. Retry is the
// caller's responsibility; no retry or backoff lives here.
type Provider interface {
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
	Name() string
}

// Options tunes a single completion request.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

var (
	// ErrMissingCredential is returned when no API key is configured.
	ErrMissingCredential = errors.New("generation service API key is not configured")
	// ErrRateLimited maps an HTTP 429 from the generation service.
	ErrRateLimited = errors.New("generation service rate limit exceeded")
	// ErrQuotaExceeded maps an HTTP 402 from the generation service.
	ErrQuotaExceeded = errors.New("generation service quota exceeded")
)

// UpstreamError wraps any other non-2xx response from the generation
// service, preserving the status code for the HTTP layer.
type UpstreamError struct {
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("generation service error (status %d): %v", e.Status, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
