package logqa

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"time"

	ollama "github.com/ollama/ollama/api"
)

const defaultEmbedModel = "nomic-embed-text"

// OllamaEmbedder computes embeddings with a local embedding model served by
// the same Ollama endpoint the oracle uses.
type OllamaEmbedder struct {
	client *ollama.Client
	model  string
}

// NewOllamaEmbedder builds an embedder for the given host (empty means
// OLLAMA_HOST or http://localhost:11434) and model (empty selects
// nomic-embed-text).
func NewOllamaEmbedder(host, model string, timeout time.Duration) (*OllamaEmbedder, error) {
	if host == "" {
		host = os.Getenv("OLLAMA_HOST")
	}
	if host == "" {
		host = "http://localhost:11434"
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if model == "" {
		model = defaultEmbedModel
	}
	return &OllamaEmbedder{
		client: ollama.NewClient(u, &http.Client{Timeout: timeout}),
		model:  model,
	}, nil
}

func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := e.client.Embed(ctx, &ollama.EmbedRequest{
		Model: e.model,
		Input: text,
	})
	if err != nil {
		return nil, err
	}
	if res == nil || len(res.Embeddings) == 0 || len(res.Embeddings[0]) == 0 {
		return nil, errors.New("empty embedding response")
	}
	return res.Embeddings[0], nil
}

var _ Embedder = (*OllamaEmbedder)(nil)
