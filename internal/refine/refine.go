// Package refine asks a language model to correct a heuristic parse.
package refine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"resume-parser/internal/llm"
	"resume-parser/internal/parser"
	"resume-parser/internal/shared/metrics"
	"resume-parser/internal/shared/telemetry"
)

var (
	// ErrMalformedResponse is returned when the model output is not a JSON object.
	ErrMalformedResponse = errors.New("refine: malformed response")
	// ErrMissingField is returned when one of the five record keys is absent or mistyped.
	ErrMissingField = errors.New("refine: missing field")
)

var recordKeys = []string{"name", "email", "phone", "skills", "experience"}

// Adapter implements parser.Refiner on top of an llm.Completer.
type Adapter struct {
	completer llm.Completer
}

// New returns an Adapter. A nil completer yields a refiner that always
// returns the draft.
func New(c llm.Completer) *Adapter {
	return &Adapter{completer: c}
}

// Noop returns the draft unchanged.
type Noop struct{}

// Refine implements parser.Refiner.
func (Noop) Refine(_ context.Context, _ string, draft parser.Record) parser.Record {
	return draft
}

// Refine sends one request to the model and returns its record, or draft on
// any failure.
func (a *Adapter) Refine(ctx context.Context, text string, draft parser.Record) parser.Record {
	if a == nil || a.completer == nil {
		return draft
	}
	prompt, err := BuildPrompt(text, draft)
	if err != nil {
		return fail(draft, err)
	}
	raw, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		return fail(draft, err)
	}
	rec, err := ParseResponse(raw)
	if err != nil {
		return fail(draft, err)
	}
	return rec
}

func fail(draft parser.Record, err error) parser.Record {
	metrics.IncRefinementFailed()
	telemetry.Warn("refine.failed", map[string]any{"error": err.Error()})
	return draft
}

// BuildPrompt renders the refinement prompt for text and its draft record.
func BuildPrompt(text string, draft parser.Record) (string, error) {
	draftJSON, err := json.MarshalIndent(draft.Normalize(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal draft: %w", err)
	}
	var b strings.Builder
	b.WriteString("You are a resume parsing assistant. Here is the raw resume text:\n\n")
	b.WriteString(text)
	b.WriteString("\n\nHere is the initial parsed result:\n\n")
	b.Write(draftJSON)
	b.WriteString("\n\nPlease correct and improve the parsed fields.\n")
	b.WriteString("Return only a JSON object with keys: ")
	b.WriteString(strings.Join(recordKeys, ", "))
	b.WriteString(".\nUse strings for name, email and phone, and arrays of strings for skills and experience.")
	return b.String(), nil
}

// ParseResponse decodes the model output into a Record. Code fences are
// stripped and all five keys must be present with the expected types.
func ParseResponse(raw string) (parser.Record, error) {
	cleaned := llm.CleanJSON(raw)
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return parser.Record{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if fields == nil {
		return parser.Record{}, ErrMalformedResponse
	}

	var rec parser.Record
	targets := map[string]any{
		"name":       &rec.Name,
		"email":      &rec.Email,
		"phone":      &rec.Phone,
		"skills":     &rec.Skills,
		"experience": &rec.Experience,
	}
	for _, key := range recordKeys {
		value, ok := fields[key]
		if !ok {
			return parser.Record{}, fmt.Errorf("%w: %s", ErrMissingField, key)
		}
		if err := decodeStrict(value, targets[key]); err != nil {
			return parser.Record{}, fmt.Errorf("%w: %s: %v", ErrMissingField, key, err)
		}
	}
	rec.Skills = dedupe(rec.Skills)
	return rec.Normalize(), nil
}

// decodeStrict rejects JSON null so a missing value is not mistaken for "".
func decodeStrict(value json.RawMessage, target any) error {
	if strings.TrimSpace(string(value)) == "null" {
		return errors.New("null value")
	}
	return json.Unmarshal(value, target)
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

var _ parser.Refiner = (*Adapter)(nil)
var _ parser.Refiner = Noop{}
