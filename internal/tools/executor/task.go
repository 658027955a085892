// Package executor provides tool implementations for task operations.
package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/taskpilot-ai/taskpilot/internal/backend"
	apperrors "github.com/taskpilot-ai/taskpilot/internal/errors"
	"github.com/taskpilot-ai/taskpilot/pkg/protocol"
)

// Status messages surfaced to the user after a backend call. The
// backend's own response body is used whenever it rejects a request,
// so only the happy paths get canned text.
const (
	msgTaskCreated = "Task added successfully."
	msgTaskUpdated = "Task updated successfully."
	msgTaskDeleted = "Task deleted successfully."
	msgNoTasks     = "No tasks found for you. Feel free to add one!"
)

// ============================================================
// Create Task
// ============================================================

// TaskCreate creates a new task through the backend.
type TaskCreate struct {
	client *backend.Client
}

// NewTaskCreate creates a task creation tool.
func NewTaskCreate(client *backend.Client) *TaskCreate {
	return &TaskCreate{client: client}
}

// Name returns the tool name.
func (t *TaskCreate) Name() string {
	return protocol.ToolCreateTask
}

// Description returns the tool description.
func (t *TaskCreate) Description() string {
	return "Create a new task with a title and optional description"
}

// Execute creates the task.
func (t *TaskCreate) Execute(ctx context.Context, call *Call) (*Result, error) {
	start := time.Now()

	title := stringParam(call.Params, "title")
	description := stringParam(call.Params, "description")

	resp, err := t.client.CreateTask(ctx, call.Token, title, description)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		return TimedResult(NewSuccessResult(msgTaskCreated), start), nil
	}
	return TimedResult(NewRejectedResult(resp.Body), start), nil
}

// ============================================================
// List Tasks
// ============================================================

// TaskList retrieves the caller's tasks from the backend.
type TaskList struct {
	client *backend.Client
}

// NewTaskList creates a task listing tool.
func NewTaskList(client *backend.Client) *TaskList {
	return &TaskList{client: client}
}

// Name returns the tool name.
func (t *TaskList) Name() string {
	return protocol.ToolGetTasks
}

// Description returns the tool description.
func (t *TaskList) Description() string {
	return "Retrieve the current list of tasks for the user"
}

// Execute fetches the task list. A non-empty list is passed through
// as the raw backend body so nothing is lost in rephrasing.
func (t *TaskList) Execute(ctx context.Context, call *Call) (*Result, error) {
	start := time.Now()

	resp, err := t.client.ListTasks(ctx, call.Token)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return TimedResult(NewRejectedResult(resp.Body), start), nil
	}

	empty, err := isEmptyJSON(resp.Body)
	if err != nil {
		return nil, err
	}
	if empty {
		return TimedResult(NewSuccessResult(msgNoTasks), start), nil
	}
	return TimedResult(NewSuccessResult(resp.Body), start), nil
}

// isEmptyJSON reports whether the decoded body holds no tasks. The
// backend may answer with a list, an object keyed by ID, or nothing
// useful at all; every zero-value form counts as empty.
func isEmptyJSON(body string) (bool, error) {
	var decoded any
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		return false, apperrors.NewBuilder(apperrors.CodeBackendDecodeFailed, "task list response is not valid JSON").
			System().
			Wrap(err).
			Build()
	}

	switch v := decoded.(type) {
	case nil:
		return true, nil
	case []any:
		return len(v) == 0, nil
	case map[string]any:
		return len(v) == 0, nil
	case string:
		return v == "", nil
	case bool:
		return !v, nil
	case float64:
		return v == 0, nil
	}
	return false, nil
}

// ============================================================
// Update Task
// ============================================================

// TaskUpdate marks a task as completed through the backend, optionally
// changing its title or description.
type TaskUpdate struct {
	client *backend.Client
}

// NewTaskUpdate creates a task update tool.
func NewTaskUpdate(client *backend.Client) *TaskUpdate {
	return &TaskUpdate{client: client}
}

// Name returns the tool name.
func (t *TaskUpdate) Name() string {
	return protocol.ToolUpdateTask
}

// Description returns the tool description.
func (t *TaskUpdate) Description() string {
	return "Mark a task as completed, optionally updating its title or description"
}

// Execute updates the task.
func (t *TaskUpdate) Execute(ctx context.Context, call *Call) (*Result, error) {
	start := time.Now()

	taskID, err := intParam(call.Params, "task_id")
	if err != nil {
		return nil, err
	}

	update := backend.TaskUpdate{Completed: true}
	if title, ok := optionalString(call.Params, "title"); ok {
		update.Title = &title
	}
	if description, ok := optionalString(call.Params, "description"); ok {
		update.Description = &description
	}

	resp, err := t.client.UpdateTask(ctx, call.Token, taskID, update)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusOK {
		return TimedResult(NewSuccessResult(msgTaskUpdated), start), nil
	}
	return TimedResult(NewRejectedResult(resp.Body), start), nil
}

// ============================================================
// Delete Task
// ============================================================

// TaskDelete removes a task through the backend.
type TaskDelete struct {
	client *backend.Client
}

// NewTaskDelete creates a task deletion tool.
func NewTaskDelete(client *backend.Client) *TaskDelete {
	return &TaskDelete{client: client}
}

// Name returns the tool name.
func (t *TaskDelete) Name() string {
	return protocol.ToolDeleteTask
}

// Description returns the tool description.
func (t *TaskDelete) Description() string {
	return "Delete a task by its numeric identifier"
}

// Execute deletes the task.
func (t *TaskDelete) Execute(ctx context.Context, call *Call) (*Result, error) {
	start := time.Now()

	taskID, err := intParam(call.Params, "task_id")
	if err != nil {
		return nil, err
	}

	resp, err := t.client.DeleteTask(ctx, call.Token, taskID)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusOK {
		return TimedResult(NewSuccessResult(msgTaskDeleted), start), nil
	}
	return TimedResult(NewRejectedResult(resp.Body), start), nil
}

// ============================================================
// Parameter Helpers
// ============================================================

// stringParam returns the named parameter, or "" when it is absent or
// not a string.
func stringParam(params map[string]any, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

// optionalString returns the named parameter and whether it was
// present as a string.
func optionalString(params map[string]any, key string) (string, bool) {
	v, ok := params[key].(string)
	return v, ok
}

// intParam returns the named parameter as an int. The intent
// classifier produces native ints while JSON-decoded input arrives as
// float64 or json.Number, so all numeric forms are accepted.
func intParam(params map[string]any, key string) (int, error) {
	v, ok := params[key]
	if !ok {
		return 0, apperrors.User(apperrors.CodeToolInvalidParams,
			fmt.Sprintf("missing required parameter %q", key))
	}

	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, apperrors.Wrap(err, apperrors.CodeToolInvalidParams,
				fmt.Sprintf("parameter %q is not an integer", key), apperrors.CategoryUser)
		}
		return int(i), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, apperrors.Wrap(err, apperrors.CodeToolInvalidParams,
				fmt.Sprintf("parameter %q is not an integer", key), apperrors.CategoryUser)
		}
		return i, nil
	}

	return 0, apperrors.User(apperrors.CodeToolInvalidParams,
		fmt.Sprintf("parameter %q is not an integer", key))
}
