// Package prompt builds the prompts sent to the language model.
package prompt

import (
	"fmt"
	"strings"
)

// DefaultSystemPrompt is the assistant's built-in persona.
const DefaultSystemPrompt = `You are a helpful productivity assistant that helps users manage their tasks through natural language.

Your capabilities include:
1. Adding new tasks
2. Listing existing tasks
3. Updating tasks
4. Deleting tasks

Always respond in a helpful and friendly manner.
`

type Builder struct {
	SystemPrompt string
}

// NewBuilder creates a prompt builder. An empty system prompt selects
// the built-in one.
func NewBuilder(systemPrompt string) *Builder {
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultSystemPrompt
	}
	return &Builder{SystemPrompt: systemPrompt}
}

// BuildToolReplyPrompt asks the model to phrase a tool result as a
// reply to the user's request.
func (b *Builder) BuildToolReplyPrompt(userInput, toolResult string) string {
	return fmt.Sprintf("\nUser request: \"%s\"\n\nTool result:\n%s\n\nReply politely and clearly to the user.\n",
		userInput, toolResult)
}

// BuildChatPrompt wraps plain conversation in the system prompt.
func (b *Builder) BuildChatPrompt(userInput string) string {
	return fmt.Sprintf("\n%s\n\nUser said: \"%s\"\n", b.SystemPrompt, userInput)
}
