// Package llm provides the completion client used for summary generation.
// Providers share one Client interface so services and tests can swap in
// doubles without caring which vendor is behind it.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Supported providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAzure     = "azure"
	ProviderAnthropic = "anthropic"
)

// ErrNotConfigured is returned when no provider credentials are present.
// Generation is refused; cached summaries are still served.
var ErrNotConfigured = errors.New("completion client is not configured")

// Config holds completion client configuration.
type Config struct {
	Provider   string // "openai", "azure" or "anthropic"
	APIKey     string
	BaseURL    string // openai: optional custom endpoint; azure: resource endpoint, required
	Model      string // model name, or the deployment name on azure
	APIVersion string // azure only, e.g. "2024-06-01"
}

// Enabled reports whether the config carries enough to build a client.
func (c Config) Enabled() bool {
	switch c.Provider {
	case ProviderAzure:
		return c.APIKey != "" && c.BaseURL != ""
	case ProviderOpenAI, ProviderAnthropic:
		return c.APIKey != ""
	default:
		return false
	}
}

// Client produces a single completion from a system and user prompt pair.
type Client interface {
	Complete(ctx context.Context, req Request) (*Completion, error)
	Model() string
}

// Request is one completion call.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  *float64 // nil leaves the provider default in place
}

// Completion is the model's reply plus usage accounting.
type Completion struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
}

// New creates a Client for the configured provider.
func New(cfg Config) (Client, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	switch cfg.Provider {
	case ProviderOpenAI, ProviderAzure:
		return newOpenAIClient(cfg)
	case ProviderAnthropic:
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported completion provider: %s", cfg.Provider)
	}
}

// Temp builds an inline temperature pointer for Request.
func Temp(t float64) *float64 {
	return &t
}
