package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a provider based on configuration. An empty
// provider name selects OpenRouter, the production default.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openrouter", "":
		return NewOpenRouterProvider(config), nil

	case "openai":
		return NewOpenAIProvider(config), nil

	case "ollama":
		return NewOllamaProvider(config), nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openrouter, openai, ollama)", config.Provider)
	}
}
