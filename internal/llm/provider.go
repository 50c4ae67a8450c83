// Package llm wraps the upstream chat-completion providers behind a
// single Provider interface. The client normalizes transport and auth
// failures into typed errors; it never inspects the content of a
// response beyond trimming it.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/taksh1507/LegalEaseAI/internal/model"
)

// SystemRole is the fixed system message sent with every completion
const SystemRole = "You are LegalEaseAI, a helpful legal assistant. Provide clear, informative responses about legal matters. Keep responses conversational and helpful."

// Typed failures. The orchestrator branches on these; none of them
// ever reach the caller of Analyze.
var (
	// ErrMissingCredentials means no API key is configured. Checked
	// before any network I/O.
	ErrMissingCredentials = errors.New("llm: api key not configured")

	// ErrEmptyResponse means the response envelope carried no usable
	// message content.
	ErrEmptyResponse = errors.New("llm: empty response from provider")
)

// TransportError carries the status code and raw error body of a
// failed provider call for diagnostics.
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("llm: provider returned %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("llm: transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsRecoverable reports whether err is one of the typed provider
// failures the orchestrator degrades on. Anything else is treated as a
// programming error and surfaces to the caller.
func IsRecoverable(err error) bool {
	var te *TransportError
	return errors.Is(err, ErrMissingCredentials) ||
		errors.Is(err, ErrEmptyResponse) ||
		errors.As(err, &te)
}

// CompletionRequest is one prompt submission
type CompletionRequest struct {
	// Prompt is the user-role message
	Prompt string

	// Model overrides the configured model for this call
	Model string

	// MaxTokens overrides the configured response budget
	MaxTokens int
}

// CompletionResponse is the trimmed text of the single model choice
type CompletionResponse struct {
	Content    string
	Model      string
	TokensUsed int
}

// Provider defines the interface for chat-completion providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends one prompt and returns the trimmed response
	// content. A single attempt per call; retry policy belongs to
	// the caller.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openrouter", "openai", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for hosted providers. Absence is recoverable.
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout per call, seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// Temperature for sampling
	Temperature float32

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults matching the production
// pipeline: low temperature, generous token budget.
func DefaultConfig() Config {
	return Config{
		Provider:    "openrouter",
		Timeout:     60,
		MaxTokens:   10000,
		Temperature: 0.3,
	}
}

// ConfigFromModel converts the application LLM config
func ConfigFromModel(c model.LLMConfig) Config {
	return Config{
		Provider:    c.Provider,
		Model:       c.Model,
		APIKey:      c.APIKey,
		BaseURL:     c.BaseURL,
		Timeout:     c.Timeout,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
		HTTPProxy:   c.HTTPProxy,
		HTTPSProxy:  c.HTTPSProxy,
		NoProxy:     c.NoProxy,
	}
}
