package taskpilot

import "context"

// ArgSpec describes a single named tool argument. Type is a natural-language
// type hint ("number", "list of numbers", "string") used only to brief the
// oracle; it is not a binding schema.
type ArgSpec struct {
	Name string
	Type string
}

// ToolSpec declares a tool's name, ordered arguments, and the one-line
// semantics shown to the oracle. Examples carry worked input->arguments
// pairs for tools whose argument shape is derived from free text.
type ToolSpec struct {
	Name        string
	Args        []ArgSpec
	Description string
	Examples    []string
}

// ToolRequest carries the arguments extracted by the intent resolver,
// bound by name, plus the original user query for tools that want it.
type ToolRequest struct {
	Arguments map[string]any
	Query     string
}

// ToolResponse is the result of a tool invocation. Content is the
// user-facing rendering; Payload optionally carries a structured value
// (e.g. a calendar action descriptor for a downstream executor).
type ToolResponse struct {
	Content string
	Payload any
}

// Tool is a named, registered callable action. Tools are invoked only by
// the Dispatcher, never by the intent resolver.
type Tool interface {
	Spec() ToolSpec
	Invoke(ctx context.Context, req ToolRequest) (ToolResponse, error)
}
