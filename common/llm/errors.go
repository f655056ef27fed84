package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
)

// UpstreamKind classifies a failed provider call for status mapping and logs.
type UpstreamKind string

const (
	UpstreamUnreachable        UpstreamKind = "unreachable"
	UpstreamUnauthorized       UpstreamKind = "unauthorized"
	UpstreamRateLimited        UpstreamKind = "rate_limited"
	UpstreamDeploymentNotFound UpstreamKind = "deployment_not_found"
	UpstreamTimeout            UpstreamKind = "timeout"
)

// UpstreamError wraps a provider failure with its classification. The cause
// stays reachable through Unwrap for operator logs.
type UpstreamError struct {
	Kind  UpstreamKind
	cause error
}

// NewUpstreamError builds a pre-classified upstream failure. Provider clients
// normally go through Classify; this exists for tests and wrappers.
func NewUpstreamError(kind UpstreamKind, cause error) *UpstreamError {
	return &UpstreamError{Kind: kind, cause: cause}
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion upstream %s: %v", e.Kind, e.cause)
}

func (e *UpstreamError) Unwrap() error {
	return e.cause
}

// Classify maps a provider call failure onto the upstream taxonomy. Timeouts
// are detected first so a deadline that fired mid-request is not mistaken for
// a network failure.
func Classify(ctx context.Context, err error) *UpstreamError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &UpstreamError{Kind: UpstreamTimeout, cause: err}
	}

	var openaiErr *openai.Error
	if errors.As(err, &openaiErr) {
		return &UpstreamError{Kind: kindForStatus(openaiErr.StatusCode), cause: err}
	}

	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return &UpstreamError{Kind: kindForStatus(anthropicErr.StatusCode), cause: err}
	}

	// No API response at all means we never reached the provider.
	return &UpstreamError{Kind: UpstreamUnreachable, cause: err}
}

func kindForStatus(status int) UpstreamKind {
	switch status {
	case 401, 403:
		return UpstreamUnauthorized
	case 404:
		return UpstreamDeploymentNotFound
	case 408:
		return UpstreamTimeout
	case 429:
		return UpstreamRateLimited
	default:
		return UpstreamUnreachable
	}
}
