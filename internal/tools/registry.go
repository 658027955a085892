// Package tools provides a unified tool registry with schemas and executors.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/taskpilot-ai/taskpilot/internal/backend"
	"github.com/taskpilot-ai/taskpilot/internal/tools/executor"
	"github.com/taskpilot-ai/taskpilot/internal/tools/schemas"
)

// unknownActionMessage is returned for tool names nothing is
// registered under. Dispatch answers with it instead of failing so
// the conversation can continue.
const unknownActionMessage = "Unknown action"

// Registry combines schemas and executors for complete tool management.
type Registry struct {
	schemas   *schemas.Registry
	executors *executor.Registry
}

// NewRegistry creates a new empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas:   schemas.NewRegistry(),
		executors: executor.NewRegistry(),
	}
}

// Initialize creates a registry with the four task tools wired to the
// given backend client.
func Initialize(client *backend.Client) *Registry {
	r := NewRegistry()
	schemas.RegisterTaskTools(r.schemas)

	r.executors.Register(executor.NewTaskCreate(client))
	r.executors.Register(executor.NewTaskList(client))
	r.executors.Register(executor.NewTaskUpdate(client))
	r.executors.Register(executor.NewTaskDelete(client))

	return r
}

// Register registers both a schema and executor for a tool.
func (r *Registry) Register(tool executor.Tool, schema *schemas.Schema) {
	r.executors.Register(tool)
	r.schemas.Register(schema)
}

// Schemas returns all registered tool schemas.
func (r *Registry) Schemas() []*schemas.Schema {
	return r.schemas.All()
}

// Dispatch executes the named tool and returns the text to surface to
// the user. Backend rejections come back as text too; only transport
// and parameter failures surface as errors.
func (r *Registry) Dispatch(ctx context.Context, name string, params map[string]any, token string) (string, error) {
	result, err := r.executors.Execute(ctx, name, &executor.Call{
		Params: params,
		Token:  token,
	})
	if err != nil {
		var notFound *executor.ToolNotFoundError
		if errors.As(err, &notFound) {
			return unknownActionMessage, nil
		}
		return "", err
	}
	return resultText(result), nil
}

// resultText extracts the user-facing text from a tool result.
func resultText(result *executor.Result) string {
	switch {
	case result.Data == nil:
		return result.Error
	default:
		if s, ok := result.Data.(string); ok {
			return s
		}
		b, err := json.Marshal(result.Data)
		if err != nil {
			return fmt.Sprintf("%v", result.Data)
		}
		return string(b)
	}
}
