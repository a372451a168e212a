// Package nlp wraps the language-analysis capabilities the field extractors
// depend on: entity recognition, sentence segmentation and POS tagging.
package nlp

import (
	"context"
	"strings"
)

// Entity labels produced by the engines in this package.
const (
	LabelPerson   = "PERSON"
	LabelOrg      = "ORG"
	LabelProduct  = "PRODUCT"
	LabelLanguage = "LANGUAGE"
)

// Entity is a labelled span of text.
type Entity struct {
	Text  string
	Label string
}

// Token is a single word with its Penn Treebank part-of-speech tag.
type Token struct {
	Text string
	Tag  string
}

// Engine is the NLP capability consumed by the extractors. Implementations must
// be safe for concurrent use; they are built once per process and shared.
type Engine interface {
	Entities(ctx context.Context, text string) ([]Entity, error)
	Sentences(ctx context.Context, text string) ([]string, error)
	Tokens(ctx context.Context, sentence string) ([]Token, error)
}

// IsVerb reports whether tag is one of the VB* verb tags.
func IsVerb(tag string) bool {
	return strings.HasPrefix(tag, "VB")
}
