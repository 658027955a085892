package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskpilot-ai/taskpilot/pkg/protocol"
)

func TestSchemaBuilder(t *testing.T) {
	schema := NewSchema("demo", "A demo tool").
		AddParam("name", "string", "The name", true).
		AddParam("count", "integer", "How many", false).
		Build()

	assert.Equal(t, "demo", schema.Name)
	assert.Equal(t, "A demo tool", schema.Description)
	assert.Equal(t, "object", schema.Parameters["type"])

	props := schema.Parameters["properties"].(map[string]any)
	require.Contains(t, props, "name")
	require.Contains(t, props, "count")
	assert.Equal(t, "string", props["name"].(map[string]any)["type"])
	assert.Equal(t, "integer", props["count"].(map[string]any)["type"])

	assert.Equal(t, []string{"name"}, schema.Parameters["required"])
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(NewSchema("alpha", "first").Build())
	r.Register(NewSchema("beta", "second").Build())

	s, ok := r.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, "first", s.Description)

	_, ok = r.Get("gamma")
	assert.False(t, ok)

	assert.ElementsMatch(t, []string{"alpha", "beta"}, r.List())
	assert.Len(t, r.All(), 2)
}

func TestProviderFormats(t *testing.T) {
	r := NewRegistry()
	r.Register(NewSchema("alpha", "first").AddParam("x", "string", "an x", true).Build())

	openAI := r.ToOpenAIFormat()
	require.Len(t, openAI, 1)
	assert.Equal(t, "function", openAI[0]["type"])
	fn := openAI[0]["function"].(*Schema)
	assert.Equal(t, "alpha", fn.Name)

	anthropic := r.ToAnthropicFormat()
	require.Len(t, anthropic, 1)
	assert.Equal(t, "alpha", anthropic[0]["name"])
	assert.Equal(t, "first", anthropic[0]["description"])
	params := anthropic[0]["input_schema"].(map[string]any)
	assert.Equal(t, "object", params["type"])
}

func TestRegisterTaskTools(t *testing.T) {
	r := NewRegistry()
	RegisterTaskTools(r)

	assert.ElementsMatch(t, []string{
		protocol.ToolCreateTask,
		protocol.ToolGetTasks,
		protocol.ToolUpdateTask,
		protocol.ToolDeleteTask,
	}, r.List())

	create, ok := r.Get(protocol.ToolCreateTask)
	require.True(t, ok)
	assert.Equal(t, []string{"title"}, create.Parameters["required"])

	update, ok := r.Get(protocol.ToolUpdateTask)
	require.True(t, ok)
	assert.Equal(t, []string{"task_id"}, update.Parameters["required"])

	del, ok := r.Get(protocol.ToolDeleteTask)
	require.True(t, ok)
	assert.Equal(t, []string{"task_id"}, del.Parameters["required"])

	// Every tool accepts a session token, but never requires one.
	for _, name := range r.List() {
		s, _ := r.Get(name)
		props := s.Parameters["properties"].(map[string]any)
		assert.Contains(t, props, "session_token", name)
		assert.NotContains(t, s.Parameters["required"], "session_token", name)
	}
}
