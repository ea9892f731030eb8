package logqa

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/davidhaley/taskpilot/src/models"
)

// ErrEmptyIndex reports that no logs have been indexed yet. Callers surface
// it to the user; it never terminates the process.
var ErrEmptyIndex = errors.New("no logs have been indexed yet; upload a log file first")

const defaultTopK = 3

// Answerer performs retrieval-augmented question answering: the question is
// embedded, the closest log chunks are retrieved, and the oracle answers
// grounded in those excerpts.
type Answerer struct {
	Embedder Embedder
	Store    VectorStore
	Oracle   models.Agent
	TopK     int
}

func (a *Answerer) Answer(ctx context.Context, question string) (string, error) {
	count, err := a.Store.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("log index: %w", err)
	}
	if count == 0 {
		return "", ErrEmptyIndex
	}

	queryVec, err := a.Embedder.Embed(ctx, question)
	if err != nil {
		return "", fmt.Errorf("embed question: %w", err)
	}

	topK := a.TopK
	if topK <= 0 {
		topK = defaultTopK
	}
	chunks, err := a.Store.Search(ctx, queryVec, topK)
	if err != nil {
		return "", fmt.Errorf("search log index: %w", err)
	}
	if len(chunks) == 0 {
		return "", ErrEmptyIndex
	}

	answer, err := a.Oracle.Generate(ctx, groundedPrompt(question, chunks))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

func groundedPrompt(question string, chunks []Chunk) string {
	var sb strings.Builder
	sb.Grow(1024)
	sb.WriteString("Use the following log excerpts to answer the question. ")
	sb.WriteString("If the excerpts do not contain the answer, say so.\n\n")
	for i, c := range chunks {
		fmt.Fprintf(&sb, "Excerpt %d (%s):\n%s\n\n", i+1, c.Source, c.Text)
	}
	sb.WriteString("Question: ")
	sb.WriteString(question)
	sb.WriteString("\n")
	return sb.String()
}
