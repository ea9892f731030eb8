package models

import "context"

// Agent is the completion oracle contract: one prompt in, raw text out.
// Implementations hold only read-only configuration and are safe to share
// across concurrent queries.
type Agent interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
