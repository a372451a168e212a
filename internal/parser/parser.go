// Package parser turns resume text into a Record using regular expressions,
// structural heuristics and an NLP engine, then hands the draft to an
// optional Refiner.
package parser

import (
	"context"

	"resume-parser/internal/nlp"
	"resume-parser/internal/shared/telemetry"
)

// Refiner corrects a heuristic draft. Implementations must return the draft
// unchanged when they cannot improve it.
type Refiner interface {
	Refine(ctx context.Context, text string, draft Record) Record
}

// Parser composes the field extractors. It holds no per-call state.
type Parser struct {
	engine  nlp.Engine
	refiner Refiner
}

// New constructs a Parser. refiner may be nil.
func New(engine nlp.Engine, refiner Refiner) *Parser {
	return &Parser{engine: engine, refiner: refiner}
}

// Extract runs the heuristic extractors over text.
func (p *Parser) Extract(ctx context.Context, text string) Record {
	var (
		entities  []nlp.Entity
		sentences []string
		err       error
	)
	if p.engine != nil {
		entities, err = p.engine.Entities(ctx, text)
		if err != nil {
			telemetry.Warn("parser.entities_failed", map[string]any{"error": err.Error()})
		}
		sentences, err = p.engine.Sentences(ctx, text)
		if err != nil {
			telemetry.Warn("parser.sentences_failed", map[string]any{"error": err.Error()})
		}
	}

	email, phone := ExtractContact(text)
	rec := Record{
		Name:       ExtractName(ctx, p.engine, text),
		Email:      email,
		Phone:      phone,
		Skills:     ExtractSkills(entities),
		Experience: ExtractExperience(ctx, p.engine, sentences),
	}
	return rec.Normalize()
}

// Parse extracts a draft and passes it through the refiner, if any.
func (p *Parser) Parse(ctx context.Context, text string) Record {
	draft := p.Extract(ctx, text)
	if p.refiner == nil {
		return draft
	}
	return p.refiner.Refine(ctx, text, draft).Normalize()
}
