package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	BackendOpenAI = "openai"
	BackendClaude = "claude"
	BackendOllama = "ollama"
)

type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`
	Backend    string `env:"RECOMMEND_BACKEND" envDefault:"openai"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`

	ClaudeAPIKey  string `env:"CLAUDE_API_KEY"`
	ClaudeModel   string `env:"CLAUDE_MODEL" envDefault:"claude-opus-4-6"`
	ClaudeBaseURL string `env:"CLAUDE_BASE_URL"`

	OllamaHost  string `env:"OLLAMA_HOST" envDefault:"http://localhost:11434"`
	OllamaModel string `env:"OLLAMA_MODEL" envDefault:"llava"`

	MaxTokens      int           `env:"MAX_OUTPUT_TOKENS" envDefault:"500"`
	Temperature    float64       `env:"TEMPERATURE" envDefault:"0.3"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`

	// HistoryDBPath enables the recommendation history when non-empty.
	HistoryDBPath string `env:"HISTORY_DB_PATH"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
}

// Load reads an optional .env file, then the process environment.
// Variables already set in the environment win over .env entries.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// Model returns the model name for the selected backend.
func (c *Config) Model() string {
	switch c.Backend {
	case BackendClaude:
		return c.ClaudeModel
	case BackendOllama:
		return c.OllamaModel
	default:
		return c.OpenAIModel
	}
}

// Validate reports configuration that must stop the process at startup.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when RECOMMEND_BACKEND=openai")
		}
	case BackendClaude:
		if c.ClaudeAPIKey == "" {
			return fmt.Errorf("CLAUDE_API_KEY is required when RECOMMEND_BACKEND=claude")
		}
	case BackendOllama:
		if c.OllamaHost == "" {
			return fmt.Errorf("OLLAMA_HOST is required when RECOMMEND_BACKEND=ollama")
		}
	default:
		return fmt.Errorf("unknown RECOMMEND_BACKEND %q", c.Backend)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("MAX_OUTPUT_TOKENS must be positive, got %d", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("TEMPERATURE must be between 0 and 2, got %g", c.Temperature)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return nil
}
