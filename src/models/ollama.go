package models

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"
)

// ---------------------------- Ollama -----------------------------------------

const defaultOllamaTimeout = 60 * time.Second

// OllamaLLM talks to a local or remote Ollama server. The request is issued
// non-streaming from the caller's perspective: chunks are accumulated and
// returned as one completion.
type OllamaLLM struct {
	Client *ollama.Client
	Model  string
}

// NewOllamaLLM builds a client for the given host (empty means OLLAMA_HOST
// or http://localhost:11434) with an explicit transport timeout.
func NewOllamaLLM(host, model string, timeout time.Duration) (*OllamaLLM, error) {
	if host == "" {
		host = os.Getenv("OLLAMA_HOST")
	}
	if host == "" {
		host = "http://localhost:11434"
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}
	if timeout <= 0 {
		timeout = defaultOllamaTimeout
	}
	httpClient := &http.Client{Timeout: timeout}
	return &OllamaLLM{
		Client: ollama.NewClient(u, httpClient),
		Model:  model,
	}, nil
}

func (o *OllamaLLM) Generate(ctx context.Context, prompt string) (string, error) {
	var text strings.Builder

	req := &ollama.GenerateRequest{
		Model:  o.Model,
		Prompt: prompt,
	}

	if err := o.Client.Generate(ctx, req, func(gr ollama.GenerateResponse) error {
		if gr.Response != "" {
			text.WriteString(gr.Response)
		}
		return nil
	}); err != nil {
		return "", err
	}

	return text.String(), nil
}

var _ Agent = (*OllamaLLM)(nil)
