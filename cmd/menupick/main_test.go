package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/menupick/internal/config"
	claudeadapter "github.com/vbonduro/menupick/internal/recommend/claude"
	ollamaadapter "github.com/vbonduro/menupick/internal/recommend/ollama"
	openaiadapter "github.com/vbonduro/menupick/internal/recommend/openai"
)

func TestNewRecommenderSelectsBackend(t *testing.T) {
	base := config.Config{MaxTokens: 500, Temperature: 0.3}

	cfg := base
	cfg.Backend = config.BackendOpenAI
	cfg.OpenAIAPIKey = "sk-test"
	assert.IsType(t, &openaiadapter.OpenAIRecommender{}, newRecommender(&cfg, slog.Default()))

	cfg = base
	cfg.Backend = config.BackendClaude
	cfg.ClaudeAPIKey = "sk-ant-test"
	assert.IsType(t, &claudeadapter.ClaudeRecommender{}, newRecommender(&cfg, slog.Default()))

	cfg = base
	cfg.Backend = config.BackendOllama
	cfg.OllamaHost = "http://localhost:11434"
	assert.IsType(t, &ollamaadapter.OllamaRecommender{}, newRecommender(&cfg, slog.Default()))
}

func TestNewServiceWithoutHistory(t *testing.T) {
	cfg := &config.Config{Backend: config.BackendOllama, OllamaHost: "http://localhost:11434", MaxTokens: 500}

	svc, cleanup, err := newService(cfg, slog.Default())
	require.NoError(t, err)
	defer cleanup()

	assert.False(t, svc.HistoryEnabled())
}

func TestNewServiceWithHistory(t *testing.T) {
	cfg := &config.Config{
		Backend:       config.BackendOllama,
		OllamaHost:    "http://localhost:11434",
		MaxTokens:     500,
		HistoryDBPath: filepath.Join(t.TempDir(), "history.db"),
	}

	svc, cleanup, err := newService(cfg, slog.Default())
	require.NoError(t, err)
	defer cleanup()

	assert.True(t, svc.HistoryEnabled())
}

func TestReadAnalyzeInput(t *testing.T) {
	t.Cleanup(func() { analyzeImage, analyzeText = "", "" })

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR")
	path := filepath.Join(t.TempDir(), "menu.png")
	require.NoError(t, os.WriteFile(path, png, 0o600))

	analyzeImage, analyzeText = path, "Soup, Salad"
	sub, err := readAnalyzeInput(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "Soup, Salad", sub.MenuText)
	require.NotNil(t, sub.Image)
	assert.Equal(t, "image/png", sub.Image.MimeType)
	assert.Equal(t, "menu.png", sub.Image.Filename)
	assert.Equal(t, png, sub.Image.Data)
}

func TestReadAnalyzeInputFromStdin(t *testing.T) {
	t.Cleanup(func() { analyzeImage, analyzeText = "", "" })

	analyzeImage, analyzeText = "", "-"
	sub, err := readAnalyzeInput(strings.NewReader("Burger\nSalad\n"))
	require.NoError(t, err)
	assert.Equal(t, "Burger\nSalad\n", sub.MenuText)
	assert.Nil(t, sub.Image)
}

func TestReadAnalyzeInputMissingImage(t *testing.T) {
	t.Cleanup(func() { analyzeImage, analyzeText = "", "" })

	analyzeImage = filepath.Join(t.TempDir(), "nope.jpg")
	_, err := readAnalyzeInput(strings.NewReader(""))
	assert.Error(t, err)
}
