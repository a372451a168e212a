package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resume-parser/internal/shared/telemetry"
)

func TestIsGPT5(t *testing.T) {
	tests := []struct {
		name  string
		model string
		want  bool
	}{
		{name: "gpt5", model: "gpt-5", want: true},
		{name: "gpt5 variant", model: "gpt-5-mini", want: true},
		{name: "gpt5 uppercase", model: " GPT-5o ", want: true},
		{name: "gpt4", model: "gpt-4o", want: false},
		{name: "empty", model: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := isGPT5(tt.model); got != tt.want {
				t.Fatalf("isGPT5(%q) = %v, want %v", tt.model, got, tt.want)
			}
		})
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(" ", "gpt-4o", 0.3); err == nil {
		t.Fatalf("expected error for missing api key")
	}
	c, err := NewClient("key", "", 0.3)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.model != DefaultModel {
		t.Fatalf("expected default model %s, got %s", DefaultModel, c.model)
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient("test-key", "gpt-4o-mini", 0.3)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	c.endpoint = srv.URL
	return c
}

func TestCompleteSendsPromptAndReturnsContent(t *testing.T) {
	var got chatRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","model":"gpt-4o-mini","choices":[{"message":{"role":"assistant","content":" {\"name\":\"Jane\"} "}}]}`))
	})

	out, err := c.Complete(context.Background(), "fix this resume")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != `{"name":"Jane"}` {
		t.Fatalf("unexpected content %q", out)
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "fix this resume" {
		t.Fatalf("unexpected messages %+v", got.Messages)
	}
	if got.Temperature == nil || *got.Temperature != float32(0.3) {
		t.Fatalf("expected temperature 0.3, got %v", got.Temperature)
	}
	if got.ResponseFormat.Type != "json_object" {
		t.Fatalf("expected json_object response format, got %q", got.ResponseFormat.Type)
	}
}

func TestCompleteSurfacesAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	})

	_, err := c.Complete(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "bad key") {
		t.Fatalf("expected api error, got %v", err)
	}
}

func TestCompleteRejectsEmptyChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"1","choices":[]}`))
	})

	if _, err := c.Complete(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error for empty choices")
	}
}

func TestNewClientKeepsTransportDefaultTimeout(t *testing.T) {
	t.Setenv("OPENAI_TIMEOUT_SECONDS", "5")
	c, err := NewClient("key", "", 0.3)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.httpClient.Timeout != 0 {
		t.Fatalf("expected no client timeout, got %s", c.httpClient.Timeout)
	}
}

func TestCompleteLogsUsage(t *testing.T) {
	var buf bytes.Buffer
	telemetry.SetOutput(&buf)
	t.Cleanup(func() { telemetry.Configure(telemetry.Options{}) })

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"1","choices":[{"message":{"role":"assistant","content":"{}"}}],"usage":{"prompt_tokens":7,"completion_tokens":5,"total_tokens":12}}`))
	})
	if _, err := c.Complete(context.Background(), "prompt"); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	logged := buf.String()
	for _, want := range []string{`"msg":"llm.response"`, `"provider":"openai"`, `"total_tokens":12`} {
		if !strings.Contains(logged, want) {
			t.Fatalf("expected %s in log, got %s", want, logged)
		}
	}
}
