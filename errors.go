package taskpilot

import "fmt"

// OracleTransportError wraps a network or endpoint failure while talking to
// the completion oracle. It is fatal for the current query and is never
// retried.
type OracleTransportError struct {
	Err error
}

func (e *OracleTransportError) Error() string {
	return fmt.Sprintf("oracle transport: %v", e.Err)
}

func (e *OracleTransportError) Unwrap() error { return e.Err }

// IntentParseError means the oracle's output could not be parsed into a
// tool-call intent: invalid JSON, or a JSON value missing the required
// "tool"/"args" keys. Raw preserves the offending oracle text.
type IntentParseError struct {
	Raw string
	Err error
}

func (e *IntentParseError) Error() string {
	return fmt.Sprintf("intent parse: %v", e.Err)
}

func (e *IntentParseError) Unwrap() error { return e.Err }

// UnknownToolError reports that the oracle named a tool outside the
// registry. It is folded into an UnknownTool result; its rendering is the
// user-facing message for that result.
type UnknownToolError struct {
	Tool string
}

func (e *UnknownToolError) Error() string {
	return "Unknown tool: " + e.Tool
}

// ToolExecutionError wraps a failure raised by a registered tool. It is
// caught at the dispatch boundary and folded into a ToolError result; its
// rendering is the user-facing message for that result.
type ToolExecutionError struct {
	Tool string
	Err  error
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("Error while executing tool %s: %v", e.Tool, e.Err)
}

func (e *ToolExecutionError) Unwrap() error { return e.Err }
