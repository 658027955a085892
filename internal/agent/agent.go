// Package agent provides the TaskPilot orchestrator.
//
// A request flows through three stages:
//   - keyword classification decides whether the text names a task operation
//   - matched operations are dispatched to the task backend
//   - the language model phrases the outcome as a conversational reply
//
// Failures at any stage surface as an apologetic reply, never as an
// error, so a conversation can always continue.
package agent

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taskpilot-ai/taskpilot/internal/backend"
	"github.com/taskpilot-ai/taskpilot/internal/classifier"
	"github.com/taskpilot-ai/taskpilot/internal/config"
	"github.com/taskpilot-ai/taskpilot/internal/cost"
	"github.com/taskpilot-ai/taskpilot/internal/model"
	"github.com/taskpilot-ai/taskpilot/internal/prompt"
	"github.com/taskpilot-ai/taskpilot/internal/stats"
	"github.com/taskpilot-ai/taskpilot/internal/tools"
	"github.com/taskpilot-ai/taskpilot/pkg/protocol"
)

// apologyPrefix opens every reply produced from a failure.
const apologyPrefix = "I'm sorry, I encountered an error: "

// Agent orchestrates classification, tool dispatch, and reply phrasing.
type Agent struct {
	cfg        *config.Config
	classifier *classifier.Classifier
	registry   *tools.Registry
	model      model.Model
	prompts    *prompt.Builder
	stats      *stats.Collector
	costs      *cost.Tracker
}

// Input carries one user turn.
type Input struct {
	// Text is the raw user message.
	Text string

	// History carries prior conversation turns.
	History []protocol.Turn

	// UserID identifies the requesting user.
	UserID string

	// ConversationID threads turns together. Empty means a new
	// conversation; an ID is generated and echoed in the result.
	ConversationID string

	// AuthToken is the backend session token. Empty means anonymous.
	AuthToken string
}

// Option overrides an agent dependency.
type Option func(*Agent)

// WithModel replaces the model client built from configuration.
func WithModel(m model.Model) Option {
	return func(a *Agent) {
		a.model = m
	}
}

// WithRegistry replaces the tool registry built from configuration.
func WithRegistry(r *tools.Registry) Option {
	return func(a *Agent) {
		a.registry = r
	}
}

// New creates an agent from configuration.
func New(cfg *config.Config, opts ...Option) (*Agent, error) {
	a := &Agent{
		cfg:        cfg,
		classifier: classifier.New(),
		prompts:    prompt.NewBuilder(cfg.Agent.SystemPrompt),
		stats:      stats.NewCollector(),
		costs:      cost.NewTracker(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.model == nil {
		m, err := model.New(cfg)
		if err != nil {
			return nil, err
		}
		a.model = m
	}
	if a.registry == nil {
		a.registry = tools.Initialize(backend.NewClient(cfg))
	}

	return a, nil
}

// Process handles one user turn. The returned result always carries a
// reply; when something failed the reply is an apology built from the
// error and the tool call list is empty.
func (a *Agent) Process(ctx context.Context, input *Input) *protocol.Result {
	start := time.Now()

	conversationID := input.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	result, err := a.process(ctx, input, conversationID, start)
	if err != nil {
		a.stats.RecordError()
		return &protocol.Result{
			Reply:     apologyPrefix + err.Error(),
			ToolCalls: []protocol.ToolCall{},
			Meta: protocol.Meta{
				ConversationID: conversationID,
				DurationMs:     time.Since(start).Milliseconds(),
			},
		}
	}
	return result
}

func (a *Agent) process(ctx context.Context, input *Input, conversationID string, start time.Time) (*protocol.Result, error) {
	intent, ok := a.classifier.Classify(input.Text, input.UserID)
	if !ok {
		return a.chat(ctx, input, conversationID, start)
	}
	return a.act(ctx, input, intent, conversationID, start)
}

// act dispatches the classified operation to the backend and phrases
// the tool result as a reply.
func (a *Agent) act(ctx context.Context, input *Input, intent *classifier.Intent, conversationID string, start time.Time) (*protocol.Result, error) {
	// The recorded arguments include the session token so a caller can
	// audit exactly what the dispatch saw.
	arguments := make(map[string]any, len(intent.Params)+1)
	for k, v := range intent.Params {
		arguments[k] = v
	}
	arguments["session_token"] = input.AuthToken

	toolCall := protocol.ToolCall{
		ID:        uuid.NewString(),
		Name:      intent.Tool,
		Arguments: arguments,
	}

	a.stats.RecordToolCall()
	toolResult, err := a.registry.Dispatch(ctx, intent.Tool, intent.Params, input.AuthToken)
	if err != nil {
		return nil, err
	}

	resp, err := a.model.Generate(ctx, a.request(a.prompts.BuildToolReplyPrompt(input.Text, toolResult)))
	if err != nil {
		return nil, err
	}

	return &protocol.Result{
		Reply:     resp.Text,
		ToolCalls: []protocol.ToolCall{toolCall},
		Meta:      a.finish(conversationID, resp, start),
	}, nil
}

// chat handles turns that name no task operation.
func (a *Agent) chat(ctx context.Context, input *Input, conversationID string, start time.Time) (*protocol.Result, error) {
	resp, err := a.model.Generate(ctx, a.request(a.prompts.BuildChatPrompt(input.Text)))
	if err != nil {
		return nil, err
	}

	return &protocol.Result{
		Reply:     resp.Text,
		ToolCalls: []protocol.ToolCall{},
		Meta:      a.finish(conversationID, resp, start),
	}, nil
}

// request builds a model request. The persona travels inside the user
// prompt, so the system field stays empty.
func (a *Agent) request(userPrompt string) *model.Request {
	return &model.Request{
		Prompt:      userPrompt,
		MaxTokens:   a.cfg.Model.MaxTokens,
		Temperature: a.cfg.Model.Temperature,
	}
}

// finish records usage and assembles result metadata.
func (a *Agent) finish(conversationID string, resp *model.Response, start time.Time) protocol.Meta {
	spent := a.costs.Record(resp.Model, resp.TokensUsed)
	a.stats.RecordRequest(resp.TokensUsed, time.Since(start))

	return protocol.Meta{
		ConversationID: conversationID,
		Model:          resp.Model,
		TokensUsed:     resp.TokensUsed,
		Cost:           spent,
		DurationMs:     time.Since(start).Milliseconds(),
	}
}

// Stats returns a snapshot of runtime statistics.
func (a *Agent) Stats() *stats.Stats {
	return a.stats.Collect()
}

// DailyCost returns today's usage totals.
func (a *Agent) DailyCost() cost.DailyStats {
	return a.costs.GetDailyStats()
}

// MonthlyCost returns this month's usage totals.
func (a *Agent) MonthlyCost() cost.MonthlyStats {
	return a.costs.GetMonthlyStats()
}
