package providers

import (
	"context"
	"fmt"
)

// Request contains the prompt material sent to a provider.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
}

// Response contains the raw completion from a provider.
type Response struct {
	Content    string
	TokensUsed int
}

// Completer is the provider abstraction interface.
type Completer interface {
	Complete(ctx context.Context, req Request) (Response, error)
	Name() string
}

// Known reports whether name is a supported provider.
func Known(name string) bool {
	switch name {
	case "anthropic", "openai", "gemini", "google", "ollama", "lmstudio":
		return true
	}
	return false
}

// New creates a provider by name.
func New(provider, model string) (Completer, error) {
	switch provider {
	case "anthropic":
		return NewAnthropic(model)
	case "openai":
		return NewOpenAI(model)
	case "gemini", "google":
		return NewGemini(model)
	case "ollama", "lmstudio":
		return NewOllama(model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
