package models

import (
	"context"
	"fmt"
	"time"
)

// NewLLMProvider returns a concrete Agent for the named provider. The host
// and timeout only apply to providers with a configurable endpoint (ollama);
// the hosted providers read their credentials from the environment.
func NewLLMProvider(ctx context.Context, provider, host, model string, timeout time.Duration) (Agent, error) {
	switch provider {
	case "ollama":
		return NewOllamaLLM(host, model, timeout)
	case "openai":
		return NewOpenAILLM(model), nil
	case "anthropic", "claude":
		return NewAnthropicLLM(model), nil
	case "gemini", "google":
		return NewGeminiLLM(ctx, model)
	case "dummy":
		return NewDummyLLM(""), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
