package taskpilot

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/davidhaley/taskpilot/src/dates"
	"github.com/davidhaley/taskpilot/src/models"
)

// ToolCallIntent is the structured decision extracted from the oracle's raw
// output. A nil Tool means "no tool, answer directly". Intents are produced
// fresh per query and never persisted.
type ToolCallIntent struct {
	Tool *string
	Args map[string]any
}

// IntentResolver briefs the oracle with the tool catalogue and parses its
// reply into a ToolCallIntent. It never executes a tool itself, so parse
// and validation failures cannot have side effects.
type IntentResolver struct {
	oracle   models.Agent
	registry *Registry
	logger   zerolog.Logger
}

func NewIntentResolver(oracle models.Agent, registry *Registry, logger zerolog.Logger) *IntentResolver {
	return &IntentResolver{oracle: oracle, registry: registry, logger: logger}
}

// Resolve runs the date resolver over the query, constructs the system
// prompt, calls the oracle, and parses the reply strictly as a JSON object
// with "tool" and "args" keys.
//
// Failures are typed: transport problems surface as *OracleTransportError,
// malformed oracle output as *IntentParseError.
func (r *IntentResolver) Resolve(ctx context.Context, userQuery string, now time.Time) (ToolCallIntent, error) {
	annotated := userQuery
	if resolved, ok := dates.Resolve(userQuery, now); ok {
		annotated = fmt.Sprintf("%s (Note: %q refers to the date %s.)", userQuery, resolved.Phrase, resolved.ISO())
		r.logger.Debug().Str("phrase", resolved.Phrase).Str("date", resolved.ISO()).Msg("resolved relative date")
	}

	prompt := r.buildSystemPrompt() + "\nUser: " + annotated + "\n"

	output, err := r.oracle.Generate(ctx, prompt)
	if err != nil {
		return ToolCallIntent{}, &OracleTransportError{Err: err}
	}
	r.logger.Debug().Str("output", output).Msg("oracle intent output")

	return parseIntent(output)
}

// buildSystemPrompt enumerates every registered tool by name, ordered
// argument list, and usage description, followed by the strict output-shape
// instruction. Worked examples are included for tools that declare them.
func (r *IntentResolver) buildSystemPrompt() string {
	var sb strings.Builder
	sb.Grow(2048)

	sb.WriteString("You are an AI tool-calling assistant.")
	sb.WriteString(` Read the user's query and return an output in JSON object in the format: {"tool": tool_name, "args": arguments}.`)
	sb.WriteString("\nAvailable tools are:\n")

	for _, spec := range r.registry.Specs() {
		args := make([]string, len(spec.Args))
		for i, a := range spec.Args {
			args[i] = a.Name + ": " + a.Type
		}
		fmt.Fprintf(&sb, " %s(%s) : %s\n", spec.Name, strings.Join(args, ", "), spec.Description)
		for _, example := range spec.Examples {
			sb.WriteString("   Example: ")
			sb.WriteString(example)
			sb.WriteString("\n")
		}
	}

	sb.WriteString(`If there is no available tool for the respective user input, then just return { "tool": null, "args": { "query": "..." } }`)
	sb.WriteString("\nONLY return a valid JSON. No explanation, no markdown.\n")
	return sb.String()
}

// parseIntent decodes the oracle text as one JSON object with exactly the
// keys "tool" and "args". The oracle is an external, non-deterministic
// collaborator, so its output is treated as untrusted input.
func parseIntent(output string) (ToolCallIntent, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(output), &raw); err != nil {
		return ToolCallIntent{}, &IntentParseError{Raw: output, Err: err}
	}

	toolRaw, ok := raw["tool"]
	if !ok {
		return ToolCallIntent{}, &IntentParseError{Raw: output, Err: fmt.Errorf("missing %q key", "tool")}
	}
	argsRaw, ok := raw["args"]
	if !ok {
		return ToolCallIntent{}, &IntentParseError{Raw: output, Err: fmt.Errorf("missing %q key", "args")}
	}

	var intent ToolCallIntent
	if string(toolRaw) != "null" {
		var name string
		if err := json.Unmarshal(toolRaw, &name); err != nil {
			return ToolCallIntent{}, &IntentParseError{Raw: output, Err: fmt.Errorf("tool name: %w", err)}
		}
		intent.Tool = &name
	}
	if string(argsRaw) != "null" {
		if err := json.Unmarshal(argsRaw, &intent.Args); err != nil {
			return ToolCallIntent{}, &IntentParseError{Raw: output, Err: fmt.Errorf("args: %w", err)}
		}
	}
	if intent.Args == nil {
		intent.Args = map[string]any{}
	}
	return intent, nil
}
