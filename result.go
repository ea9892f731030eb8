package taskpilot

// ResultKind tags the variant of a DispatchResult. Exactly one variant is
// produced per query.
type ResultKind int

const (
	// ResultSuccess means a registered tool ran and returned a value.
	ResultSuccess ResultKind = iota
	// ResultToolError means a registered tool failed during execution.
	ResultToolError
	// ResultUnknownTool means the oracle named a tool outside the registry.
	ResultUnknownTool
	// ResultParseFailure means the oracle's output was not a valid intent;
	// the router degrades to direct chat and records the raw text.
	ResultParseFailure
	// ResultChatFallback means the oracle answered directly, by explicit
	// null-tool intent.
	ResultChatFallback
)

func (k ResultKind) String() string {
	switch k {
	case ResultSuccess:
		return "success"
	case ResultToolError:
		return "tool_error"
	case ResultUnknownTool:
		return "unknown_tool"
	case ResultParseFailure:
		return "parse_failure"
	case ResultChatFallback:
		return "chat_fallback"
	default:
		return "unknown"
	}
}

// DispatchResult is the unit returned to the caller for a single query.
type DispatchResult struct {
	Kind    ResultKind
	Tool    string // tool involved, when one was named
	Content string // user-facing text
	Payload any    // structured payload (calendar descriptors, numeric results)
	Raw     string // raw oracle text, populated for ResultParseFailure

	// Degraded marks a reply produced by re-issuing the raw user query to
	// the oracle after intent parsing failed.
	Degraded bool
}

func successResult(tool, content string, payload any) DispatchResult {
	return DispatchResult{Kind: ResultSuccess, Tool: tool, Content: content, Payload: payload}
}

func toolErrorResult(tool, message string) DispatchResult {
	return DispatchResult{Kind: ResultToolError, Tool: tool, Content: message}
}

func unknownToolResult(name string) DispatchResult {
	unkErr := &UnknownToolError{Tool: name}
	return DispatchResult{Kind: ResultUnknownTool, Tool: name, Content: unkErr.Error()}
}

func chatFallbackResult(text string) DispatchResult {
	return DispatchResult{Kind: ResultChatFallback, Content: text}
}
