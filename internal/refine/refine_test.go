package refine

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"resume-parser/internal/parser"
)

type fakeCompleter struct {
	out    string
	err    error
	prompt string
	calls  int
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.out, f.err
}

func draftRecord() parser.Record {
	return parser.Record{
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Phone:      "",
		Skills:     []string{"Go"},
		Experience: []string{"Built payment systems at Acme for five years."},
	}
}

func TestRefineReturnsDraftOnFailure(t *testing.T) {
	cases := []struct {
		name string
		fc   *fakeCompleter
	}{
		{name: "transport error", fc: &fakeCompleter{err: errors.New("timeout")}},
		{name: "not json", fc: &fakeCompleter{out: "Sure! Here is the result."}},
		{name: "json array", fc: &fakeCompleter{out: `["Jane"]`}},
		{name: "missing key", fc: &fakeCompleter{out: `{"name":"J","email":"","phone":"","skills":[]}`}},
		{name: "wrong type", fc: &fakeCompleter{out: `{"name":"J","email":"","phone":"","skills":"Go","experience":[]}`}},
		{name: "null field", fc: &fakeCompleter{out: `{"name":null,"email":"","phone":"","skills":[],"experience":[]}`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := draftRecord()
			got := New(tc.fc).Refine(context.Background(), "text", draft)
			if !reflect.DeepEqual(got, draft) {
				t.Fatalf("expected draft back, got %+v", got)
			}
			if tc.fc.calls != 1 {
				t.Fatalf("expected one request, got %d", tc.fc.calls)
			}
		})
	}
}

func TestRefineReplacesDraftWholesale(t *testing.T) {
	fc := &fakeCompleter{out: "```json\n{\"name\":\"Jane Q. Doe\",\"email\":\"jane@example.com\",\"phone\":\"+1 555 010 9999\",\"skills\":[\"Go\",\"SQL\",\"Go\"],\"experience\":[]}\n```"}
	got := New(fc).Refine(context.Background(), "raw text", draftRecord())

	want := parser.Record{
		Name:       "Jane Q. Doe",
		Email:      "jane@example.com",
		Phone:      "+1 555 010 9999",
		Skills:     []string{"Go", "SQL"},
		Experience: []string{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected record %+v", got)
	}
}

func TestRefineWithoutCompleter(t *testing.T) {
	draft := draftRecord()
	if got := New(nil).Refine(context.Background(), "text", draft); !reflect.DeepEqual(got, draft) {
		t.Fatalf("expected draft back")
	}
	if got := (Noop{}).Refine(context.Background(), "text", draft); !reflect.DeepEqual(got, draft) {
		t.Fatalf("expected draft back from Noop")
	}
}

func TestBuildPromptIncludesTextAndDraft(t *testing.T) {
	prompt, err := BuildPrompt("RAW RESUME", parser.Record{Name: "Jane Doe"})
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	for _, want := range []string{"RAW RESUME", `"name": "Jane Doe"`, `"skills": []`, "name, email, phone, skills, experience"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestParseResponseErrors(t *testing.T) {
	if _, err := ParseResponse("nope"); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
	if _, err := ParseResponse(`{"name":"x"}`); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	if _, err := ParseResponse("null"); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse for null, got %v", err)
	}
}
