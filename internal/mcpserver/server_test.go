package mcpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskpilot-ai/taskpilot/internal/backend"
	"github.com/taskpilot-ai/taskpilot/internal/config"
	apperrors "github.com/taskpilot-ai/taskpilot/internal/errors"
	"github.com/taskpilot-ai/taskpilot/internal/tools"
	"github.com/taskpilot-ai/taskpilot/pkg/protocol"
)

func newTestServer(backendURL string) *Server {
	cfg := config.Default()
	cfg.Backend.BaseURL = backendURL
	cfg.Backend.RequestTimeoutSeconds = 5

	return New(cfg, tools.Initialize(backend.NewClient(cfg)))
}

// connect runs the server over an in-memory transport and returns a
// connected client session. The server stops when ctx ends.
func connect(t *testing.T, ctx context.Context, srv *Server) *gomcp.ClientSession {
	t.Helper()

	serverTransport, clientTransport := gomcp.NewInMemoryTransports()

	go func() {
		_ = srv.Run(ctx, serverTransport)
	}()

	client := gomcp.NewClient(&gomcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	return session
}

func textContent(t *testing.T, result *gomcp.CallToolResult) string {
	t.Helper()

	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*gomcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestListTools(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session := connect(t, ctx, newTestServer("http://localhost:8000"))
	defer session.Close()

	result, err := session.ListTools(ctx, nil)
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		protocol.ToolCreateTask,
		protocol.ToolGetTasks,
		protocol.ToolUpdateTask,
		protocol.ToolDeleteTask,
	}, names)
}

// The session token travels inside the tool arguments but must reach
// the backend as the bearer credential, never as a task field.
func TestCallTool_CreateStripsSessionToken(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var gotAuth string
	var gotBody map[string]any
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1,"title":"buy milk"}`))
	}))
	defer backendSrv.Close()

	session := connect(t, ctx, newTestServer(backendSrv.URL))
	defer session.Close()

	result, err := session.CallTool(ctx, &gomcp.CallToolParams{
		Name: protocol.ToolCreateTask,
		Arguments: map[string]any{
			"title":         "buy milk",
			"session_token": "tok-1",
		},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "Task added successfully.", textContent(t, result))

	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "buy milk", gotBody["title"])
	assert.NotContains(t, gotBody, "session_token")
}

func TestCallTool_ListEmpty(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var gotAuth string
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer backendSrv.Close()

	session := connect(t, ctx, newTestServer(backendSrv.URL))
	defer session.Close()

	result, err := session.CallTool(ctx, &gomcp.CallToolParams{
		Name:      protocol.ToolGetTasks,
		Arguments: map[string]any{"user_id": "user-7"},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "No tasks found for you. Feel free to add one!", textContent(t, result))

	// No session token in the arguments means an anonymous backend call.
	assert.Empty(t, gotAuth)
}

func TestCallTool_BackendFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backendSrv.Close()

	session := connect(t, ctx, newTestServer(backendSrv.URL))
	defer session.Close()

	result, err := session.CallTool(ctx, &gomcp.CallToolParams{
		Name:      protocol.ToolDeleteTask,
		Arguments: map[string]any{"task_id": 3},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "backend request failed", textContent(t, result))
}

func TestServe_Disabled(t *testing.T) {
	srv := newTestServer("http://localhost:8000")

	err := srv.Serve(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.CategoryUser, apperrors.GetCategory(err))
	assert.Contains(t, err.Error(), "disabled")
}

func TestListenAddr(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr string
	}{
		{name: "host and port", url: "http://localhost:8003", want: "localhost:8003"},
		{name: "ip host", url: "http://127.0.0.1:9000", want: "127.0.0.1:9000"},
		{name: "missing port", url: "http://localhost", wantErr: "must include a port"},
		{name: "missing host", url: "http://", wantErr: "no host"},
		{name: "unparseable", url: "http://[::1", wantErr: "invalid MCP server URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := listenAddr(tt.url)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr)
		})
	}
}
