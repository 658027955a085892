// Package taskpilot is a natural language front end for a task
// management backend. It classifies a user's message into a task
// operation, relays the operation to the backend over REST, and uses a
// language model to phrase the outcome conversationally.
package taskpilot

import (
	"context"

	"github.com/taskpilot-ai/taskpilot/internal/agent"
	"github.com/taskpilot-ai/taskpilot/internal/backend"
	"github.com/taskpilot-ai/taskpilot/internal/config"
	"github.com/taskpilot-ai/taskpilot/internal/cost"
	"github.com/taskpilot-ai/taskpilot/internal/mcpserver"
	"github.com/taskpilot-ai/taskpilot/internal/stats"
	"github.com/taskpilot-ai/taskpilot/internal/tools"
	"github.com/taskpilot-ai/taskpilot/pkg/protocol"
)

// Input carries one user turn.
type Input = agent.Input

// Assistant is the long-lived entry point. Create one per backend and
// model configuration and share it across conversations.
type Assistant struct {
	cfg      *config.Config
	agent    *agent.Agent
	registry *tools.Registry
}

// New creates an assistant from configuration. A nil config selects
// the defaults, including environment overrides.
func New(cfg *config.Config) (*Assistant, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	registry := tools.Initialize(backend.NewClient(cfg))

	a, err := agent.New(cfg, agent.WithRegistry(registry))
	if err != nil {
		return nil, err
	}

	return &Assistant{
		cfg:      cfg,
		agent:    a,
		registry: registry,
	}, nil
}

// Process handles one user turn. The result always carries a reply;
// failures surface as an apologetic reply rather than an error.
func (a *Assistant) Process(ctx context.Context, input *Input) *protocol.Result {
	return a.agent.Process(ctx, input)
}

// ProcessUserInput mirrors the service entry shape: it processes one
// turn and returns the reply text and the tool calls that were made.
func (a *Assistant) ProcessUserInput(ctx context.Context, userInput string, history []protocol.Turn, userID, conversationID, authToken string) (string, []protocol.ToolCall) {
	result := a.agent.Process(ctx, &agent.Input{
		Text:           userInput,
		History:        history,
		UserID:         userID,
		ConversationID: conversationID,
		AuthToken:      authToken,
	})
	return result.Reply, result.ToolCalls
}

// ServeMCP exposes the task tools over the Model Context Protocol
// until ctx is canceled. The surface must be enabled in configuration.
func (a *Assistant) ServeMCP(ctx context.Context) error {
	return mcpserver.New(a.cfg, a.registry).Serve(ctx)
}

// Stats returns a snapshot of runtime statistics.
func (a *Assistant) Stats() *stats.Stats {
	return a.agent.Stats()
}

// DailyCost returns today's model usage totals.
func (a *Assistant) DailyCost() cost.DailyStats {
	return a.agent.DailyCost()
}

// MonthlyCost returns this month's model usage totals.
func (a *Assistant) MonthlyCost() cost.MonthlyStats {
	return a.agent.MonthlyCost()
}
