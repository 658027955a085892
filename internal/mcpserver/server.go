// Package mcpserver exposes the task tools over the Model Context
// Protocol so external MCP clients can drive the same registry the
// conversational agent uses.
package mcpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/taskpilot-ai/taskpilot/internal/config"
	apperrors "github.com/taskpilot-ai/taskpilot/internal/errors"
	"github.com/taskpilot-ai/taskpilot/internal/tools"
)

const (
	serverName    = "taskpilot"
	serverVersion = "1.0.0"

	shutdownTimeout = 5 * time.Second
)

// Server serves the tool registry over MCP.
type Server struct {
	cfg      *config.Config
	registry *tools.Registry
	mcp      *gomcp.Server
}

// New creates an MCP server wrapping the given registry. Every schema
// in the registry is mounted as an MCP tool.
func New(cfg *config.Config, registry *tools.Registry) *Server {
	s := &Server{
		cfg:      cfg,
		registry: registry,
	}

	s.mcp = gomcp.NewServer(&gomcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)

	for _, schema := range registry.Schemas() {
		s.mcp.AddTool(&gomcp.Tool{
			Name:        schema.Name,
			Description: schema.Description,
			InputSchema: schema.Parameters,
		}, s.handler(schema.Name))
	}

	return s
}

// handler adapts registry dispatch to the MCP tool call contract. The
// session token rides in the arguments on the wire but is stripped
// before the parameters reach the tools.
func (s *Server) handler(name string) gomcp.ToolHandler {
	return func(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		params := map[string]any{}
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
				return errorResult(apperrors.Wrap(err, apperrors.CodeToolInvalidParams,
					"tool arguments are not a JSON object", apperrors.CategoryUser)), nil
			}
		}

		token, _ := params["session_token"].(string)
		delete(params, "session_token")

		text, err := s.registry.Dispatch(ctx, name, params, token)
		if err != nil {
			return errorResult(err), nil
		}

		return &gomcp.CallToolResult{
			Content: []gomcp.Content{&gomcp.TextContent{Text: text}},
		}, nil
	}
}

// errorResult wraps a dispatch failure as an MCP error payload.
func errorResult(err error) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: apperrors.FormatUserMessage(err)}},
		IsError: true,
	}
}

// Run serves MCP over the given transport until the context ends or
// the client disconnects.
func (s *Server) Run(ctx context.Context, transport gomcp.Transport) error {
	return s.mcp.Run(ctx, transport)
}

// Serve listens on the configured MCP address and serves the
// streamable HTTP transport until ctx is canceled.
func (s *Server) Serve(ctx context.Context) error {
	if !s.cfg.IsMCPEnabled() {
		return apperrors.New(apperrors.CodeConfigInvalid,
			"MCP surface is disabled in configuration", apperrors.CategoryUser)
	}

	addr, err := listenAddr(s.cfg.MCP.ServerURL)
	if err != nil {
		return err
	}

	handler := gomcp.NewStreamableHTTPHandler(func(*http.Request) *gomcp.Server {
		return s.mcp
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return apperrors.Wrap(err, apperrors.CodeMCPUnavailable,
				"MCP server shutdown failed", apperrors.CategoryTemporary)
		}
		<-errCh
		return nil
	case err := <-errCh:
		return apperrors.Wrap(err, apperrors.CodeMCPUnavailable,
			"MCP server stopped", apperrors.CategoryTemporary)
	}
}

// listenAddr extracts the host:port listen address from the
// configured MCP server URL.
func listenAddr(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeConfigInvalid,
			"invalid MCP server URL", apperrors.CategoryUser)
	}
	if u.Host == "" {
		return "", apperrors.User(apperrors.CodeConfigInvalid, "MCP server URL has no host")
	}
	if u.Port() == "" {
		return "", apperrors.User(apperrors.CodeConfigInvalid, "MCP server URL must include a port")
	}
	return u.Host, nil
}
