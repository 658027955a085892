// Package classifier provides parameter extraction from user messages.
package classifier

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/taskpilot-ai/taskpilot/pkg/protocol"
)

// digitRunRegex matches the first run of decimal digits anywhere in the input.
var digitRunRegex = regexp.MustCompile(`\d+`)

// extractParams builds the parameter map for a matched operation.
// lowered is the lowercased input; raw is the input as the user typed it.
func extractParams(tool, lowered, raw, userID string) map[string]any {
	switch tool {
	case protocol.ToolCreateTask:
		return map[string]any{"title": extractTitle(lowered, raw)}
	case protocol.ToolGetTasks:
		return map[string]any{"user_id": userID}
	case protocol.ToolDeleteTask:
		return map[string]any{"task_id": extractTaskID(raw)}
	case protocol.ToolUpdateTask:
		return map[string]any{"task_id": extractTaskID(raw), "status": "completed"}
	}
	return map[string]any{}
}

// extractTitle takes the substring after the first occurrence of the
// highest-priority create keyword present, then strips a leading "task"
// token and a leading "to" token. The two prefixes are stripped in that
// order with no re-trim between them, so "add task to buy milk" yields
// "to buy milk" while "add to buy milk" yields "buy milk". Falls back
// to the full raw input when nothing remains.
func extractTitle(lowered, raw string) string {
	for _, kw := range createKeywords {
		if !strings.Contains(lowered, kw) {
			continue
		}

		parts := strings.SplitN(lowered, kw, 2)
		title := strings.TrimSpace(parts[1])
		title = strings.TrimPrefix(title, "task")
		title = strings.TrimPrefix(title, "to")
		title = strings.TrimSpace(title)

		if title == "" {
			return raw
		}
		return title
	}
	return raw
}

// extractTaskID returns the first run of digits in the raw input as an
// integer, defaulting to 1 when the input carries no usable number.
func extractTaskID(raw string) int {
	m := digitRunRegex.FindString(raw)
	if m == "" {
		return 1
	}
	id, err := strconv.Atoi(m)
	if err != nil {
		return 1
	}
	return id
}
