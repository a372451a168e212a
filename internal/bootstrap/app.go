package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/history"
	"resume-parser/internal/llm"
	anthropicllm "resume-parser/internal/llm/anthropic"
	geminillm "resume-parser/internal/llm/gemini"
	openaillm "resume-parser/internal/llm/openai"
	"resume-parser/internal/nlp"
	"resume-parser/internal/parser"
	"resume-parser/internal/refine"
	"resume-parser/internal/shared/config"
	"resume-parser/internal/shared/server"
	"resume-parser/internal/shared/storage/db"
	"resume-parser/internal/shared/storage/object"
	localstore "resume-parser/internal/shared/storage/object/local"
	s3store "resume-parser/internal/shared/storage/object/s3"
	"resume-parser/internal/shared/telemetry"
	"resume-parser/internal/uploads"
)

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Store          object.ObjectStore
	Engine         nlp.Engine
	Completer      llm.Completer
	Parser         *parser.Parser
	HistoryRepo    history.Repo
	HistoryService *history.Service
	UploadService  *uploads.Service
	UploadHandler  *uploads.Handler
	HistoryHandler *history.Handler
}

// Build prepares dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	telemetry.Configure(telemetry.Options{Level: cfg.LogLevel, File: cfg.LogFile})

	app, err := BuildCore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("build object store: %w", err)
	}
	app.Store = store

	app.UploadService = &uploads.Service{
		Parser:  app.Parser,
		History: app.HistoryService,
		Store:   store,
	}
	app.UploadHandler = uploads.NewHandler(app.UploadService, int64(cfg.MaxUploadMB)<<20)
	app.HistoryHandler = history.NewHandler(app.HistoryService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         cfg,
		UploadHandler:  app.UploadHandler,
		HistoryHandler: app.HistoryHandler,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":           cfg.Env,
		"history_store": cfg.HistoryStore,
		"object_store":  cfg.ObjectStoreType,
		"llm_provider":  cfg.LLMProvider,
		"refine":        app.Completer != nil,
	})
	return app, nil
}

// BuildCore wires the parser and history without HTTP or object storage. The
// CLI uses it directly.
func BuildCore(ctx context.Context, cfg config.Config) (*App, error) {
	engine, err := buildEngine(cfg)
	if err != nil {
		return nil, err
	}
	completer, err := buildCompleter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var refiner parser.Refiner = refine.Noop{}
	if completer != nil {
		refiner = refine.New(completer)
	}

	sqlDB, repo, err := buildHistory(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:         cfg,
		DB:             sqlDB,
		Engine:         engine,
		Completer:      completer,
		Parser:         parser.New(engine, refiner),
		HistoryRepo:    repo,
		HistoryService: history.NewService(repo),
	}, nil
}

// Close releases the database handle, if any.
func (a *App) Close() error {
	telemetry.Sync()
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildEngine(cfg config.Config) (nlp.Engine, error) {
	var (
		lexicon *nlp.Lexicon
		err     error
	)
	if path := strings.TrimSpace(cfg.SkillsLexicon); path != "" {
		lexicon, err = nlp.LoadLexicon(path)
	} else {
		lexicon, err = nlp.DefaultLexicon()
	}
	if err != nil {
		return nil, fmt.Errorf("load skills lexicon: %w", err)
	}
	return nlp.NewProseEngine(lexicon), nil
}

// buildCompleter returns nil when refinement is disabled or unconfigured.
func buildCompleter(ctx context.Context, cfg config.Config) (llm.Completer, error) {
	provider := cfg.LLMProvider
	key := ""
	switch provider {
	case "openai":
		key = cfg.OpenAIAPIKey
	case "anthropic":
		key = cfg.AnthropicAPIKey
	case "gemini":
		key = cfg.GeminiAPIKey
	default:
		return nil, nil
	}
	if strings.TrimSpace(key) == "" {
		telemetry.Warn("bootstrap.refine_disabled", map[string]any{
			"provider": provider,
			"reason":   "missing api key",
		})
		return nil, nil
	}

	var (
		completer llm.Completer
		err       error
	)
	switch provider {
	case "anthropic":
		completer, err = anthropicllm.NewClient(key, cfg.LLMModel, cfg.LLMTemperature)
	case "gemini":
		completer, err = geminillm.NewClient(ctx, key, cfg.LLMModel, cfg.LLMTemperature, "")
	default:
		completer, err = openaillm.NewClient(key, cfg.LLMModel, cfg.LLMTemperature)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s client: %w", provider, err)
	}
	return completer, nil
}

func buildHistory(ctx context.Context, cfg config.Config) (*sql.DB, history.Repo, error) {
	switch cfg.HistoryStore {
	case "memory":
		return nil, history.NewMemoryRepo(), nil
	case "postgres":
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		return sqlDB, &history.PGRepo{DB: sqlDB}, nil
	default:
		return nil, history.NewFileRepo(cfg.HistoryFile), nil
	}
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	case "none":
		return nil, nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}
