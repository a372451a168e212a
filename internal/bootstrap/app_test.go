package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"resume-parser/internal/history"
	"resume-parser/internal/shared/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		Port:             "0",
		CORSAllowOrigin:  []string{"*"},
		ObjectStoreType:  "local",
		LocalStoreDir:    filepath.Join(dir, "uploads"),
		HistoryStore:     "file",
		HistoryFile:      filepath.Join(dir, "results.json"),
		LLMProvider:      "openai",
		LLMTemperature:   0.3,
		LogLevel:         "error",
		UploadRatePerMin: 30,
		MaxUploadMB:      10,
		Env:              "dev",
	}
}

func TestBuildWithoutAPIKeyDisablesRefinement(t *testing.T) {
	app, err := Build(testConfig(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	if app.Completer != nil {
		t.Fatalf("expected refinement disabled without key")
	}
	if _, ok := app.HistoryRepo.(*history.FileRepo); !ok {
		t.Fatalf("expected file history repo, got %T", app.HistoryRepo)
	}
	if app.Store == nil || app.Router == nil || app.Parser == nil {
		t.Fatalf("expected wired app, got %+v", app)
	}

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/history", nil))
	if resp.Code != http.StatusOK || resp.Body.String() != "[]" {
		t.Fatalf("unexpected history response %d %q", resp.Code, resp.Body.String())
	}
}

func TestBuildCompleterPerProvider(t *testing.T) {
	cfg := testConfig(t)
	cases := []struct {
		provider string
		setKey   func(*config.Config)
	}{
		{provider: "openai", setKey: func(c *config.Config) { c.OpenAIAPIKey = "sk-test" }},
		{provider: "anthropic", setKey: func(c *config.Config) { c.AnthropicAPIKey = "ak-test" }},
		{provider: "gemini", setKey: func(c *config.Config) { c.GeminiAPIKey = "gk-test" }},
	}
	for _, tc := range cases {
		t.Run(tc.provider, func(t *testing.T) {
			c := cfg
			c.LLMProvider = tc.provider
			tc.setKey(&c)
			completer, err := buildCompleter(context.Background(), c)
			if err != nil {
				t.Fatalf("buildCompleter: %v", err)
			}
			if completer == nil {
				t.Fatalf("expected completer for %s", tc.provider)
			}
		})
	}

	cfg.LLMProvider = "none"
	cfg.OpenAIAPIKey = "sk-test"
	if completer, err := buildCompleter(context.Background(), cfg); err != nil || completer != nil {
		t.Fatalf("expected no completer for provider none, got %v %v", completer, err)
	}
}

func TestBuildRejectsMissingLexicon(t *testing.T) {
	cfg := testConfig(t)
	cfg.SkillsLexicon = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := Build(cfg); err == nil {
		t.Fatalf("expected error for missing lexicon file")
	}
}

func TestBuildMemoryHistoryWithoutStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.HistoryStore = "memory"
	cfg.ObjectStoreType = "none"
	app, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := app.HistoryRepo.(*history.MemoryRepo); !ok {
		t.Fatalf("expected memory repo, got %T", app.HistoryRepo)
	}
	if app.Store != nil {
		t.Fatalf("expected no object store")
	}
}
