package nlp

import (
	"reflect"
	"testing"
)

func TestDefaultLexiconMatch(t *testing.T) {
	lex, err := DefaultLexicon()
	if err != nil {
		t.Fatalf("DefaultLexicon: %v", err)
	}

	text := "Built services in Go and Python using Docker at Acme Widgets Inc; studied at Stanford Academy."
	got := lex.Match(text)
	want := []Entity{
		{Text: "Go", Label: LabelLanguage},
		{Text: "Python", Label: LabelLanguage},
		{Text: "Docker", Label: LabelProduct},
		{Text: "Acme Widgets Inc", Label: LabelOrg},
		{Text: "Stanford Academy", Label: LabelOrg},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Match() = %#v, want %#v", got, want)
	}
}

func TestLexiconMatchWordBoundaries(t *testing.T) {
	lex, err := ParseLexicon([]byte("languages: [Go, Java, C++]\nproducts: [Git]\n"))
	if err != nil {
		t.Fatalf("ParseLexicon: %v", err)
	}

	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "prefix of longer word", text: "Google and JavaScript and GitHub", want: nil},
		{name: "symbols kept", text: "Wrote C++ daily", want: []string{"C++"}},
		{name: "punctuation boundary", text: "Java, Go.", want: []string{"Java", "Go"}},
		{name: "repeated", text: "Go Go", want: []string{"Go", "Go"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, ent := range lex.Match(tt.text) {
				got = append(got, ent.Text)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Match(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestLexiconNestedMatchDropped(t *testing.T) {
	lex, err := ParseLexicon([]byte("organizations: [Google]\norg_suffixes: [Inc]\n"))
	if err != nil {
		t.Fatalf("ParseLexicon: %v", err)
	}
	got := lex.Match("Engineer at Google Inc")
	want := []Entity{{Text: "Google Inc", Label: LabelOrg}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Match() = %#v, want %#v", got, want)
	}
}

func TestParseLexiconRejectsBadYAML(t *testing.T) {
	if _, err := ParseLexicon([]byte("languages: [unterminated")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestIsVerb(t *testing.T) {
	for _, tag := range []string{"VB", "VBD", "VBG", "VBN", "VBP", "VBZ"} {
		if !IsVerb(tag) {
			t.Fatalf("expected %s to be a verb tag", tag)
		}
	}
	for _, tag := range []string{"NN", "NNP", "JJ", ""} {
		if IsVerb(tag) {
			t.Fatalf("expected %s not to be a verb tag", tag)
		}
	}
}
