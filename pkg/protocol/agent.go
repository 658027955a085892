// Package protocol provides shared data structures used across TaskPilot
// components. These types can be imported by external callers.
package protocol

// Roles for conversation turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single conversation turn supplied by the caller.
// Turns are ephemeral; TaskPilot never stores them.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Result is the outcome of processing one user input. Reply is always
// populated, even when processing failed internally.
type Result struct {
	Reply     string     `json:"reply"`
	ToolCalls []ToolCall `json:"tool_calls"`
	Meta      Meta       `json:"meta"`
}

// Meta carries bookkeeping about how a reply was produced.
type Meta struct {
	ConversationID string  `json:"conversation_id,omitempty"`
	Model          string  `json:"model,omitempty"`
	TokensUsed     int     `json:"tokens_used"`
	Cost           float64 `json:"cost"`
	DurationMs     int64   `json:"duration_ms"`
}
