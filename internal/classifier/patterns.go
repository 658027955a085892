// Package classifier provides the ordered operation patterns.
package classifier

import (
	"strings"

	"github.com/taskpilot-ai/taskpilot/pkg/protocol"
)

// Keyword sets per operation. createKeywords is also a priority list:
// title extraction splits on the first entry that appears in the text.
var (
	createKeywords = []string{"add", "create", "make", "new"}
	listKeywords   = []string{"list", "show", "view", "display", "see", "check"}
	deleteKeywords = []string{"delete", "remove"}
	updateKeywords = []string{"update", "complete", "done"}
)

// OperationPattern matches a task operation by keyword substrings.
type OperationPattern struct {
	Tool     string
	Keywords []string
	Phrases  []string // literal phrases that also match
}

// Matches checks if the pattern matches the given lowercased message.
func (p *OperationPattern) Matches(msg string) bool {
	for _, kw := range p.Keywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	for _, ph := range p.Phrases {
		if strings.Contains(msg, ph) {
			return true
		}
	}
	return false
}

// orderedPatterns returns the operation patterns in priority order.
// The order is load-bearing: keywords overlap across operations, and
// the first pattern that matches wins. Create is checked before list,
// list before delete, delete before update.
func orderedPatterns() []*OperationPattern {
	return []*OperationPattern{
		{
			Tool:     protocol.ToolCreateTask,
			Keywords: createKeywords,
		},
		{
			Tool:     protocol.ToolGetTasks,
			Keywords: listKeywords,
			Phrases:  []string{"my tasks"},
		},
		{
			Tool:     protocol.ToolDeleteTask,
			Keywords: deleteKeywords,
		},
		{
			Tool:     protocol.ToolUpdateTask,
			Keywords: updateKeywords,
		},
	}
}
