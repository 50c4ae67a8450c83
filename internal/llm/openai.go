package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenRouter serves the OpenAI chat-completion surface for many
// upstream models; it is the default production endpoint.
const (
	openRouterBaseURL      = "https://openrouter.ai/api/v1"
	openRouterDefaultModel = "openai/gpt-3.5-turbo"
	openRouterReferer      = "https://localhost:3001"
	openRouterTitle        = "LegalEaseAI"
)

// OpenAIProvider implements Provider for any OpenAI-compatible
// chat-completion endpoint (OpenAI itself, or OpenRouter).
type OpenAIProvider struct {
	client *openai.Client
	name   string
	config Config
}

// NewOpenAIProvider creates a provider against api.openai.com or a
// custom BaseURL. The API key is deliberately not validated here:
// a missing key must surface as ErrMissingCredentials at call time so
// the pipeline can degrade instead of failing startup.
func NewOpenAIProvider(config Config) *OpenAIProvider {
	if config.Model == "" {
		config.Model = openai.GPT4oMini
	}
	return &OpenAIProvider{
		client: newChatClient(config, nil),
		name:   "openai",
		config: config,
	}
}

// NewOpenRouterProvider creates a provider against the OpenRouter
// endpoint with its attribution headers.
func NewOpenRouterProvider(config Config) *OpenAIProvider {
	if config.BaseURL == "" {
		config.BaseURL = openRouterBaseURL
	}
	if config.Model == "" {
		config.Model = openRouterDefaultModel
	}
	headers := map[string]string{
		"HTTP-Referer": openRouterReferer,
		"X-Title":      openRouterTitle,
	}
	return &OpenAIProvider{
		client: newChatClient(config, headers),
		name:   "openrouter",
		config: config,
	}
}

func newChatClient(config Config, headers map[string]string) *openai.Client {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	clientConfig.HTTPClient = newHTTPClient(config, headers)
	return openai.NewClientWithConfig(clientConfig)
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string { return p.name }

// Complete sends one chat completion request. Single attempt, fixed
// system role, per-call timeout from config.
func (p *OpenAIProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if p.config.APIKey == "" {
		return nil, ErrMissingCredentials
	}

	model := req.Model
	if model == "" {
		model = p.config.Model
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 10000
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemRole},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: p.config.Temperature,
	}

	resp, err := p.client.CreateChatCompletion(callCtx, chatReq)
	if err != nil {
		return nil, normalizeError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return nil, ErrEmptyResponse
	}

	return &CompletionResponse{
		Content:    content,
		Model:      resp.Model,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

// normalizeError maps go-openai errors onto the client's typed failures
func normalizeError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &TransportError{
			StatusCode: apiErr.HTTPStatusCode,
			Body:       apiErr.Message,
			Err:        err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &TransportError{
			StatusCode: reqErr.HTTPStatusCode,
			Body:       reqErr.Error(),
			Err:        err,
		}
	}

	return &TransportError{Err: err}
}
