package types

// ToolResult is the outcome of a single tool invocation.
// It is built per call and handed straight back to the MCP host.
type ToolResult struct {
	Text    string
	IsError bool
}

// Success wraps report text as a successful result
func Success(text string) ToolResult {
	return ToolResult{Text: text}
}

// Failure wraps a diagnostic line as an error result
func Failure(text string) ToolResult {
	return ToolResult{Text: text, IsError: true}
}
