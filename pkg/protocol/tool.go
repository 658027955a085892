package protocol

// Task tool names understood by the dispatcher.
const (
	ToolCreateTask = "create_task"
	ToolGetTasks   = "get_tasks"
	ToolUpdateTask = "update_task"
	ToolDeleteTask = "delete_task"
)

// ToolCall records a backend operation performed for a user input.
// It is returned to the caller as an audit record and discarded after
// use; nothing is persisted. Arguments include the session_token the
// call was authorized with (empty string when the call was anonymous).
type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}
