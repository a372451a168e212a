// Package llm defines the language-model boundary used for refinement.
package llm

import (
	"context"
	"strings"
)

// Completer sends a single prompt to a language model and returns the raw
// text of its answer.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CleanJSON strips a surrounding Markdown code fence (``` or ```json) from a
// model answer.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
