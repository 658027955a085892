// Package schemas provides task tool schema definitions.
package schemas

import "github.com/taskpilot-ai/taskpilot/pkg/protocol"

// RegisterTaskTools registers the schemas for the four task tools.
// session_token is declared on every tool so callers that front the
// registry directly (the MCP server) can authenticate per call.
func RegisterTaskTools(registry *Registry) {
	registry.Register(NewSchema(protocol.ToolCreateTask, "Create a new task with a title and optional description").
		AddParam("title", "string", "Title of the task", true).
		AddParam("description", "string", "Longer description of the task", false).
		AddParam("session_token", "string", "Backend session token; omit for anonymous access", false).
		Build())

	registry.Register(NewSchema(protocol.ToolGetTasks, "Retrieve the current list of tasks for the user").
		AddParam("user_id", "string", "Identifier of the user whose tasks to list", false).
		AddParam("session_token", "string", "Backend session token; omit for anonymous access", false).
		Build())

	registry.Register(NewSchema(protocol.ToolUpdateTask, "Mark a task as completed, optionally updating its title or description").
		AddParam("task_id", "integer", "Numeric identifier of the task to update", true).
		AddParam("title", "string", "Replacement title", false).
		AddParam("description", "string", "Replacement description", false).
		AddParam("session_token", "string", "Backend session token; omit for anonymous access", false).
		Build())

	registry.Register(NewSchema(protocol.ToolDeleteTask, "Delete a task by its numeric identifier").
		AddParam("task_id", "integer", "Numeric identifier of the task to delete", true).
		AddParam("session_token", "string", "Backend session token; omit for anonymous access", false).
		Build())
}
