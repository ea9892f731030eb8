package tools

import (
	"context"
	"fmt"
	"strings"

	taskpilot "github.com/davidhaley/taskpilot"
	"github.com/davidhaley/taskpilot/src/extract"
	"github.com/davidhaley/taskpilot/src/models"
)

// maxDocumentRunes bounds how much document content is forwarded to the
// oracle for summarization.
const maxDocumentRunes = 4000

// DocumentTool reads a local text or PDF file and asks the oracle to
// summarize it. File I/O is synchronous; each path is assumed query-scoped
// and not concurrently written by this system.
type DocumentTool struct {
	Oracle models.Agent
}

func (DocumentTool) Spec() taskpilot.ToolSpec {
	return taskpilot.ToolSpec{
		Name:        "analyze_document",
		Args:        []taskpilot.ArgSpec{{Name: "path", Type: "string"}},
		Description: "analyzes or summarizes a text or PDF document from the specified file path",
	}
}

func (t DocumentTool) Invoke(ctx context.Context, req taskpilot.ToolRequest) (taskpilot.ToolResponse, error) {
	path, ok := req.Arguments["path"].(string)
	if !ok || strings.TrimSpace(path) == "" {
		return taskpilot.ToolResponse{}, fmt.Errorf("missing %q argument", "path")
	}

	text, err := extract.Text(path)
	if err != nil {
		return taskpilot.ToolResponse{}, err
	}

	summary, err := t.Summarize(ctx, text)
	if err != nil {
		return taskpilot.ToolResponse{}, err
	}
	return taskpilot.ToolResponse{Content: summary}, nil
}

// Summarize sends already-extracted content to the oracle, truncated to a
// safe bound. It also backs the direct document-analysis entry point that
// bypasses oracle dispatch.
func (t DocumentTool) Summarize(ctx context.Context, text string) (string, error) {
	if runes := []rune(text); len(runes) > maxDocumentRunes {
		text = string(runes[:maxDocumentRunes])
	}
	prompt := "Please summarize or analyze the following document content:\n" + text
	summary, err := t.Oracle.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return strings.TrimSpace(summary), nil
}
