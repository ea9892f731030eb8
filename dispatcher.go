package taskpilot

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/davidhaley/taskpilot/src/models"
)

// Dispatcher validates a parsed intent against the registry and executes
// the matched tool, falls back to direct chat for null-tool intents, or
// reports a typed failure. Tool execution errors are caught here and
// converted to results; they never terminate the query.
type Dispatcher struct {
	registry *Registry
	oracle   models.Agent
	logger   zerolog.Logger
}

func NewDispatcher(registry *Registry, oracle models.Agent, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, oracle: oracle, logger: logger}
}

// Dispatch executes the intent. The returned error is non-nil only for
// oracle transport failures, which are fatal for the query; everything
// else is folded into the DispatchResult.
func (d *Dispatcher) Dispatch(ctx context.Context, intent ToolCallIntent, originalQuery string) (DispatchResult, error) {
	if intent.Tool == nil {
		return d.chat(ctx, intent, originalQuery)
	}

	name := *intent.Tool
	tool, _, ok := d.registry.Lookup(name)
	if !ok {
		d.logger.Warn().Str("tool", name).Msg("oracle named an unregistered tool")
		return unknownToolResult(name), nil
	}

	d.logger.Debug().Str("tool", name).Interface("args", intent.Args).Msg("invoking tool")
	resp, err := tool.Invoke(ctx, ToolRequest{Arguments: intent.Args, Query: originalQuery})
	if err != nil {
		execErr := &ToolExecutionError{Tool: name, Err: err}
		d.logger.Debug().Err(execErr).Msg("tool failed")
		return toolErrorResult(name, execErr.Error()), nil
	}

	return successResult(name, resp.Content, resp.Payload), nil
}

// chat handles the null-tool sentinel: the oracle is re-invoked with the
// explicit "query" argument when present, or the original user text.
func (d *Dispatcher) chat(ctx context.Context, intent ToolCallIntent, originalQuery string) (DispatchResult, error) {
	query := originalQuery
	if q, ok := intent.Args["query"].(string); ok && strings.TrimSpace(q) != "" {
		query = q
	}

	d.logger.Debug().Msg("no tool selected, answering directly")
	reply, err := d.oracle.Generate(ctx, query)
	if err != nil {
		return DispatchResult{}, &OracleTransportError{Err: err}
	}
	return chatFallbackResult(reply), nil
}
