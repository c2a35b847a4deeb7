package container

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/FACorreiaa/go-tourism-content/app/db"
	"github.com/FACorreiaa/go-tourism-content/app/observability/metrics"
	"github.com/FACorreiaa/go-tourism-content/config"
	"github.com/FACorreiaa/go-tourism-content/internal/api/content"
	"github.com/FACorreiaa/go-tourism-content/internal/api/detector"
	generativeAI "github.com/FACorreiaa/go-tourism-content/internal/api/generative_ai"
	llmInteraction "github.com/FACorreiaa/go-tourism-content/internal/api/llm_interaction"
	"github.com/FACorreiaa/go-tourism-content/internal/api/prompt"
	"github.com/FACorreiaa/go-tourism-content/internal/api/publish"
	"github.com/FACorreiaa/go-tourism-content/internal/api/templates"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *slog.Logger
	Pool           *pgxpool.Pool
	Providers      *generativeAI.Registry
	ContentService *content.ContentServiceImpl
	ContentHandler *content.HandlerImpl
	PublishHandler *publish.HandlerImpl
}

// Options lets callers swap the outbound HTTP client, e.g. in tests.
type Options struct {
	HTTPClient *http.Client
}

// NewContainer builds the static tables once and wires every component. The interaction
// log is only connected when repositories.postgres.enabled is set.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (*Container, error) {
	metrics.InitAppMetrics()

	providers, err := NewProviders(ctx, cfg, opts.HTTPClient)
	if err != nil {
		return nil, err
	}
	providers.LogConfiguration(logger)

	c := &Container{
		Config:    cfg,
		Logger:    logger,
		Providers: providers,
	}

	var repo llmInteraction.LLmInteractionRepository = llmInteraction.NopRepository{}
	if cfg.Repositories.Postgres.Enabled {
		pool, err := openInteractionLog(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		c.Pool = pool
		repo = llmInteraction.NewPostgresLlmInteractionRepo(pool, logger)
	}

	lookups := prompt.DefaultLookups()
	c.ContentService = content.NewContentService(
		templates.NewDefault(),
		detector.NewDefault(),
		lookups,
		providers,
		repo,
		metrics.Get(),
		content.Settings{
			MobileTimeout:     cfg.Generation.MobileTimeout,
			StandardTimeout:   cfg.Generation.StandardTimeout,
			MobileMaxTokens:   cfg.Generation.MobileMaxTokens,
			StandardMaxTokens: cfg.Generation.StandardMaxTokens,
			CacheDelay:        cfg.Generation.CacheDelay,
		},
		logger,
	)
	c.ContentHandler = content.NewHandler(c.ContentService, logger, cfg.Mode)

	publishService := publish.NewPublishService(cfg.Publish.Retention, metrics.Get(), logger)
	c.PublishHandler = publish.NewHandler(publishService, logger)

	return c, nil
}

// NewProviders builds the Claude, OpenAI and Gemini clients from configuration.
func NewProviders(ctx context.Context, cfg *config.Config, httpClient *http.Client) (*generativeAI.Registry, error) {
	p := cfg.Providers
	claude := generativeAI.NewClaudeClient(generativeAI.ClaudeConfig{
		APIKey:      p.Claude.APIKey,
		BaseURL:     p.Claude.BaseURL,
		Model:       p.Claude.Model,
		Version:     p.Claude.Version,
		Temperature: p.Temperature,
		HTTPClient:  httpClient,
	})
	openai := generativeAI.NewOpenAIClient(generativeAI.OpenAIConfig{
		APIKey:      p.OpenAI.APIKey,
		BaseURL:     p.OpenAI.BaseURL,
		Model:       p.OpenAI.Model,
		Temperature: p.Temperature,
		HTTPClient:  httpClient,
	})
	gemini, err := generativeAI.NewGeminiClient(ctx, generativeAI.GeminiConfig{
		APIKey:      p.Gemini.APIKey,
		BaseURL:     p.Gemini.BaseURL,
		Model:       p.Gemini.Model,
		Temperature: p.Temperature,
		HTTPClient:  httpClient,
	})
	if err != nil {
		return nil, err
	}
	return generativeAI.NewRegistry(claude, openai, gemini), nil
}

func openInteractionLog(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		return nil, err
	}
	pool, err := database.Init(ctx, dbConfig.ConnectionURL, cfg, logger)
	if err != nil {
		return nil, err
	}
	err = database.Prepare(ctx, pool, func() error {
		return database.RunMigrations(dbConfig.ConnectionURL, logger)
	}, logger)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("interaction log: %w", err)
	}
	return pool, nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
		c.Logger.Info("Database connection pool closed")
	}
}
