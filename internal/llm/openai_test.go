package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sashabaranov/go-openai"
)

func completionJSON(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		ID:    "chatcmpl-test",
		Model: "test-model",
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: "assistant", Content: content}},
		},
		Usage: openai.Usage{TotalTokens: 42},
	}
}

func TestOpenAIProvider_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", got)
		}

		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Messages) != 2 {
			t.Errorf("expected system + user messages, got %d", len(req.Messages))
		}
		if req.Messages[0].Role != openai.ChatMessageRoleSystem {
			t.Errorf("first message should be the system role, got %q", req.Messages[0].Role)
		}
		if req.Messages[1].Content != "Explain this clause." {
			t.Errorf("unexpected prompt: %q", req.Messages[1].Content)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionJSON("  The clause means X.  "))
	}))
	defer server.Close()

	provider := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})

	resp, err := provider.Complete(context.Background(), CompletionRequest{Prompt: "Explain this clause."})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "The clause means X." {
		t.Errorf("content not trimmed: %q", resp.Content)
	}
	if resp.TokensUsed != 42 {
		t.Errorf("expected 42 tokens, got %d", resp.TokensUsed)
	}
}

func TestOpenAIProvider_MissingCredentials(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionJSON("should never be reached"))
	}))
	defer server.Close()

	provider := NewOpenAIProvider(Config{APIKey: "", BaseURL: server.URL})

	_, err := provider.Complete(context.Background(), CompletionRequest{Prompt: "anything"})
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if hits.Load() != 0 {
		t.Errorf("missing key must be caught before network I/O, server saw %d requests", hits.Load())
	}
}

func TestOpenAIProvider_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limit exceeded", "type": "rate_limit_error"}}`))
	}))
	defer server.Close()

	provider := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})

	_, err := provider.Complete(context.Background(), CompletionRequest{Prompt: "anything"})

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
	if te.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", te.StatusCode)
	}
	if !IsRecoverable(err) {
		t.Error("transport failures must be recoverable")
	}
}

func TestOpenAIProvider_EmptyResponse(t *testing.T) {
	tests := []struct {
		name string
		resp openai.ChatCompletionResponse
	}{
		{"no choices", openai.ChatCompletionResponse{ID: "x", Choices: nil}},
		{"blank content", completionJSON("   \n  ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(tt.resp)
			}))
			defer server.Close()

			provider := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})

			_, err := provider.Complete(context.Background(), CompletionRequest{Prompt: "anything"})
			if !errors.Is(err, ErrEmptyResponse) {
				t.Fatalf("expected ErrEmptyResponse, got %v", err)
			}
			if !IsRecoverable(err) {
				t.Error("empty responses must be recoverable")
			}
		})
	}
}

func TestOpenRouterProvider_AttributionHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("HTTP-Referer") == "" {
			t.Error("HTTP-Referer header missing")
		}
		if got := r.Header.Get("X-Title"); got != "LegalEaseAI" {
			t.Errorf("unexpected X-Title: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionJSON("ok"))
	}))
	defer server.Close()

	provider := NewOpenRouterProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if provider.Name() != "openrouter" {
		t.Errorf("unexpected provider name: %q", provider.Name())
	}

	resp, err := provider.Complete(context.Background(), CompletionRequest{Prompt: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "ok" {
		t.Errorf("unexpected content: %q", resp.Content)
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		provider string
		wantName string
		wantErr  bool
	}{
		{"openrouter", "openrouter", false},
		{"", "openrouter", false},
		{"openai", "openai", false},
		{"ollama", "ollama", false},
		{"OpenAI", "openai", false},
		{"anthropic-direct", "", true},
	}

	for _, tt := range tests {
		t.Run("provider="+tt.provider, func(t *testing.T) {
			p, err := NewProvider(Config{Provider: tt.provider})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for unknown provider")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", p.Name(), tt.wantName)
			}
		})
	}
}
