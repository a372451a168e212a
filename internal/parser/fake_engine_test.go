package parser

import (
	"context"
	"errors"
	"strings"

	"resume-parser/internal/nlp"
)

// fakeEngine is a deterministic nlp.Engine for extractor tests.
type fakeEngine struct {
	entities  map[string][]nlp.Entity // keyed by exact input text; "*" matches any
	sentences []string
	verbs     map[string]bool // lower-case words tagged VB
	fail      bool
	calls     int
}

func (f *fakeEngine) Entities(ctx context.Context, text string) ([]nlp.Entity, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("engine down")
	}
	if ents, ok := f.entities[text]; ok {
		return ents, nil
	}
	return f.entities["*"], nil
}

func (f *fakeEngine) Sentences(ctx context.Context, text string) ([]string, error) {
	if f.fail {
		return nil, errors.New("engine down")
	}
	return f.sentences, nil
}

func (f *fakeEngine) Tokens(ctx context.Context, sentence string) ([]nlp.Token, error) {
	if f.fail {
		return nil, errors.New("engine down")
	}
	var out []nlp.Token
	for _, w := range strings.Fields(sentence) {
		tag := "NN"
		if f.verbs[strings.ToLower(strings.Trim(w, ".,;"))] {
			tag = "VBD"
		}
		out = append(out, nlp.Token{Text: w, Tag: tag})
	}
	return out, nil
}
