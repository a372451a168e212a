package nlp

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var defaultLexiconYAML []byte

type lexiconFile struct {
	Languages     []string `yaml:"languages"`
	Products      []string `yaml:"products"`
	Organizations []string `yaml:"organizations"`
	OrgSuffixes   []string `yaml:"org_suffixes"`
}

type lexiconTerm struct {
	text  string
	label string
}

// Lexicon recognizes known technologies, programming languages and
// organization names by exact, case-sensitive, word-bounded matching.
type Lexicon struct {
	terms   []lexiconTerm
	orgRule *regexp.Regexp
}

// DefaultLexicon returns the embedded lexicon.
func DefaultLexicon() (*Lexicon, error) {
	return ParseLexicon(defaultLexiconYAML)
}

// LoadLexicon reads a lexicon YAML file from disk.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}
	return ParseLexicon(data)
}

// ParseLexicon builds a lexicon from YAML.
func ParseLexicon(data []byte) (*Lexicon, error) {
	var file lexiconFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}

	lex := &Lexicon{}
	add := func(items []string, label string) {
		for _, item := range items {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				lex.terms = append(lex.terms, lexiconTerm{text: trimmed, label: label})
			}
		}
	}
	add(file.Languages, LabelLanguage)
	add(file.Products, LabelProduct)
	add(file.Organizations, LabelOrg)

	if len(file.OrgSuffixes) > 0 {
		quoted := make([]string, 0, len(file.OrgSuffixes))
		for _, s := range file.OrgSuffixes {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				quoted = append(quoted, regexp.QuoteMeta(trimmed))
			}
		}
		if len(quoted) > 0 {
			// One or two capitalized words followed by a suffix, on a single line.
			pattern := `(?:[A-Z][A-Za-z0-9&'-]*[ \t]+){1,2}(?:` + strings.Join(quoted, "|") + `)\b`
			rule, err := regexp.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("compile org suffixes: %w", err)
			}
			lex.orgRule = rule
		}
	}
	return lex, nil
}

type lexiconMatch struct {
	start, end int
	entity     Entity
}

// Match returns every lexicon hit in text in document order. A hit nested
// inside a longer hit is dropped.
func (l *Lexicon) Match(text string) []Entity {
	if l == nil || text == "" {
		return nil
	}

	var found []lexiconMatch
	for _, term := range l.terms {
		offset := 0
		for offset < len(text) {
			idx := strings.Index(text[offset:], term.text)
			if idx < 0 {
				break
			}
			start := offset + idx
			end := start + len(term.text)
			if boundaryBefore(text, start) && boundaryAfter(text, end) {
				found = append(found, lexiconMatch{start: start, end: end, entity: Entity{Text: term.text, Label: term.label}})
			}
			offset = end
		}
	}
	if l.orgRule != nil {
		for _, loc := range l.orgRule.FindAllStringIndex(text, -1) {
			found = append(found, lexiconMatch{start: loc[0], end: loc[1], entity: Entity{Text: text[loc[0]:loc[1]], Label: LabelOrg}})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].start != found[j].start {
			return found[i].start < found[j].start
		}
		return found[i].end > found[j].end
	})

	out := make([]Entity, 0, len(found))
	lastEnd := -1
	for _, m := range found {
		if m.end <= lastEnd {
			continue
		}
		out = append(out, m.entity)
		lastEnd = m.end
	}
	return out
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r) && r != '+' && r != '#'
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
