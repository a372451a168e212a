package nlp

import (
	"context"
	"fmt"

	"github.com/jdkato/prose/v2"
)

// ProseEngine implements Engine with the prose statistical models for
// sentences, POS tags and PERSON entities, and a Lexicon for skill-like
// entities (technologies, languages, organizations) that prose does not label.
type ProseEngine struct {
	lexicon *Lexicon
}

// NewProseEngine constructs an engine. A nil lexicon disables gazetteer entities.
func NewProseEngine(lexicon *Lexicon) *ProseEngine {
	return &ProseEngine{lexicon: lexicon}
}

// Entities returns model entities followed by lexicon matches in document order.
func (e *ProseEngine) Entities(ctx context.Context, text string) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("nlp entities: %w", err)
	}
	var out []Entity
	for _, ent := range doc.Entities() {
		out = append(out, Entity{Text: ent.Text, Label: ent.Label})
	}
	if e.lexicon != nil {
		out = append(out, e.lexicon.Match(text)...)
	}
	return out, nil
}

// Sentences segments text into sentences.
func (e *ProseEngine) Sentences(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := prose.NewDocument(text, prose.WithTagging(false), prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("nlp sentences: %w", err)
	}
	sents := doc.Sentences()
	out := make([]string, 0, len(sents))
	for _, s := range sents {
		out = append(out, s.Text)
	}
	return out, nil
}

// Tokens tokenizes and POS-tags a single sentence.
func (e *ProseEngine) Tokens(ctx context.Context, sentence string) ([]Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := prose.NewDocument(sentence, prose.WithSegmentation(false), prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("nlp tokens: %w", err)
	}
	toks := doc.Tokens()
	out := make([]Token, 0, len(toks))
	for _, t := range toks {
		out = append(out, Token{Text: t.Text, Tag: t.Tag})
	}
	return out, nil
}

var _ Engine = (*ProseEngine)(nil)
