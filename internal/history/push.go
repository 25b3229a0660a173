// Package history holds the prompt history rules shared by both backends and
// the anonymous, session-scoped backend.
package history

import "strings"

const (
	// ServerLimit caps the history stored on the user record.
	ServerLimit = 15
	// LocalLimit caps the anonymous per-session history.
	LocalLimit = 10
)

// Push returns a new list with prompt at the front, any earlier identical
// entry removed and the result truncated to limit. A blank prompt leaves the
// list unchanged. The input slice is not modified.
func Push(list []string, prompt string, limit int) []string {
	if strings.TrimSpace(prompt) == "" {
		out := make([]string, 0, len(list))
		return append(out, list...)
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, prompt)
	for _, p := range list {
		if p != prompt {
			out = append(out, p)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
