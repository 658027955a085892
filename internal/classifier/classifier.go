// Package classifier maps free-text user input to task operations.
//
// Classification is an ordered keyword chain: patterns are tried in
// priority order and the first match wins. Tests are case-insensitive
// substring checks against the whole input. There is no confidence
// scoring and no model fallback; input that matches nothing is handed
// to the conversational path untouched.
package classifier

import "strings"

// Intent is a classified task operation with its extracted parameters.
type Intent struct {
	Tool   string         `json:"tool"`
	Params map[string]any `json:"params"`
}

// Classifier classifies user input into task operations.
type Classifier struct {
	patterns []*OperationPattern
}

// New creates a classifier with the default operation patterns.
func New() *Classifier {
	return &Classifier{patterns: orderedPatterns()}
}

// Classify determines the task operation for the given input, if any.
// userID identifies the caller and becomes the user_id parameter of
// list operations. The boolean reports whether anything matched.
func (c *Classifier) Classify(input, userID string) (*Intent, bool) {
	lowered := strings.ToLower(input)

	for _, p := range c.patterns {
		if !p.Matches(lowered) {
			continue
		}
		return &Intent{
			Tool:   p.Tool,
			Params: extractParams(p.Tool, lowered, input, userID),
		}, true
	}

	return nil, false
}
