package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vbonduro/menupick/internal/config"
	"github.com/vbonduro/menupick/internal/db"
	"github.com/vbonduro/menupick/internal/recommend"
	claudeadapter "github.com/vbonduro/menupick/internal/recommend/claude"
	ollamaadapter "github.com/vbonduro/menupick/internal/recommend/ollama"
	openaiadapter "github.com/vbonduro/menupick/internal/recommend/openai"
	"github.com/vbonduro/menupick/internal/service"
	"github.com/vbonduro/menupick/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "menupick",
	Short: "Recommend the healthiest item on a restaurant menu",
	Long: `menupick sends a menu photo and/or typed menu items to a vision-capable
language model and returns the single healthiest choice with a justification.

Configuration is read from the environment (and an optional .env file):
RECOMMEND_BACKEND, OPENAI_API_KEY, CLAUDE_API_KEY, OLLAMA_HOST, and so on.`,
	SilenceUsage: true,
	// Running without a subcommand starts the web server.
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, analyzeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads and validates configuration. A missing credential is
// fatal here, before anything is served.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newService wires the selected backend and, when configured, the history
// database. The returned cleanup closes the database.
func newService(cfg *config.Config, logger *slog.Logger) (*service.RecommendService, func(), error) {
	recommender := newRecommender(cfg, logger)

	if cfg.HistoryDBPath == "" {
		svc := service.NewRecommendService(recommender, cfg.Backend, cfg.Model(), cfg.RequestTimeout, nil, logger)
		return svc, func() {}, nil
	}

	database, err := db.Open(cfg.HistoryDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history database: %w", err)
	}
	logger.Info("recommendation history enabled", "path", cfg.HistoryDBPath)

	svc := service.NewRecommendService(recommender, cfg.Backend, cfg.Model(), cfg.RequestTimeout, store.NewRecommendationStore(database), logger)
	cleanup := func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}
	return svc, cleanup, nil
}

func newRecommender(cfg *config.Config, logger *slog.Logger) recommend.Recommender {
	settings := recommend.Settings{
		Model:       cfg.Model(),
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}

	switch cfg.Backend {
	case config.BackendClaude:
		logger.Info("using Claude backend", "model", settings.Model)
		return claudeadapter.NewClaudeRecommender(cfg.ClaudeAPIKey, cfg.ClaudeBaseURL, settings)
	case config.BackendOllama:
		logger.Info("using Ollama backend", "model", settings.Model, "host", cfg.OllamaHost)
		return ollamaadapter.NewOllamaRecommender(cfg.OllamaHost, settings)
	default:
		logger.Info("using OpenAI backend", "model", settings.Model)
		return openaiadapter.NewOpenAIRecommender(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, settings)
	}
}
