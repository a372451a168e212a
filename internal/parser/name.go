package parser

import (
	"context"
	"strings"
	"unicode"

	"resume-parser/internal/nlp"
	"resume-parser/internal/shared/telemetry"
)

const nameHeaderLines = 10

// ExtractName looks for the candidate's name in the first non-blank lines.
// A PERSON entity of 1-3 words wins; otherwise the first line made of 2-3
// words, no digits, and at least two capitalized alphabetic words.
func ExtractName(ctx context.Context, engine nlp.Engine, text string) string {
	lines := headerLines(text, nameHeaderLines)
	if len(lines) == 0 {
		return ""
	}

	if engine != nil {
		entities, err := engine.Entities(ctx, strings.Join(lines, "\n"))
		if err != nil {
			telemetry.Warn("parser.name.entities_failed", map[string]any{"error": err.Error()})
		}
		for _, ent := range entities {
			if ent.Label != nlp.LabelPerson {
				continue
			}
			name := strings.TrimSpace(ent.Text)
			if n := len(strings.Fields(name)); n >= 1 && n <= 3 {
				return name
			}
		}
	}

	for _, line := range lines {
		if looksLikeName(line) {
			return line
		}
	}
	return ""
}

func headerLines(text string, limit int) []string {
	var out []string
	for _, line := range strings.FieldsFunc(text, isLineBreak) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
		if len(out) == limit {
			break
		}
	}
	return out
}

// isLineBreak matches the line boundaries of Unicode text: LF, CR, VT, FF,
// the file/group/record separators, NEL and the line/paragraph separators.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

func looksLikeName(line string) bool {
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 3 {
		return false
	}
	if strings.IndexFunc(line, unicode.IsDigit) >= 0 {
		return false
	}
	capitalized := 0
	for _, w := range words {
		if isCapitalizedWord(w) {
			capitalized++
		}
	}
	return capitalized >= 2
}

func isCapitalizedWord(w string) bool {
	for i, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
		if i == 0 && !unicode.IsUpper(r) {
			return false
		}
	}
	return w != ""
}
