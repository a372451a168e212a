package parser

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"resume-parser/internal/nlp"
	"resume-parser/internal/shared/telemetry"
)

const (
	minExperienceWords = 5
	maxEmbeddedBreaks  = 1
	maxUppercaseRatio  = 0.5
)

// ExtractExperience keeps sentences that read like work statements: at least
// five words, at most one line break, not mostly capitals, and containing a
// verb. Document order is preserved and duplicates are kept.
func ExtractExperience(ctx context.Context, engine nlp.Engine, sentences []string) []string {
	out := []string{}
	for _, sent := range sentences {
		s := strings.TrimSpace(sent)
		if len(strings.Fields(s)) < minExperienceWords {
			continue
		}
		if strings.Count(s, "\n") > maxEmbeddedBreaks {
			continue
		}
		if uppercaseRatio(s) > maxUppercaseRatio {
			continue
		}
		if !hasVerb(ctx, engine, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func uppercaseRatio(s string) float64 {
	upper := 0
	for _, r := range s {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return float64(upper) / (float64(utf8.RuneCountInString(s)) + 1e-5)
}

func hasVerb(ctx context.Context, engine nlp.Engine, sentence string) bool {
	if engine == nil {
		return false
	}
	tokens, err := engine.Tokens(ctx, sentence)
	if err != nil {
		telemetry.Warn("parser.experience.tokens_failed", map[string]any{"error": err.Error()})
		return false
	}
	for _, tok := range tokens {
		if nlp.IsVerb(tok.Tag) {
			return true
		}
	}
	return false
}
