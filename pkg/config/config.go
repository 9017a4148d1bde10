package config

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
)

// Config holds everything the server needs. It is loaded once at startup and
// handed to the server; handlers never read the environment themselves.
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	Provider string `envconfig:"PROVIDER" default:"openrouter"`
	// APIKey may be empty at startup. Every endpoint refuses to work without it.
	APIKey      string        `envconfig:"OPENROUTER_API_KEY"`
	BaseURL     string        `envconfig:"AI_BASE_URL" default:"https://openrouter.ai/api/v1"`
	Model       string        `envconfig:"AI_MODEL" default:"deepseek/deepseek-chat-v3-0324:free"`
	Timeout     time.Duration `envconfig:"AI_TIMEOUT" default:"8s"`
	Temperature float64       `envconfig:"AI_TEMPERATURE" default:"0.7"`

	QuizMaxTokens     int  `envconfig:"QUIZ_MAX_TOKENS" default:"1000"`
	StructuredOutputs bool `envconfig:"STRUCTURED_OUTPUTS" default:"false"`

	// Attribution headers sent to OpenRouter.
	Referer string `envconfig:"APP_REFERER"`
	Title   string `envconfig:"APP_TITLE" default:"Lullaby"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	// a blank PROVIDER= line in .env still means the default
	cfg.Provider = cmp.Or(strings.ToLower(strings.TrimSpace(cfg.Provider)), ProviderOpenRouter)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no environment is set.
func Default() *Config {
	return &Config{
		Port:          "8080",
		LogLevel:      "info",
		Provider:      ProviderOpenRouter,
		BaseURL:       "https://openrouter.ai/api/v1",
		Model:         "deepseek/deepseek-chat-v3-0324:free",
		Timeout:       8 * time.Second,
		Temperature:   0.7,
		QuizMaxTokens: 1000,
		Title:         "Lullaby",
		CORSOrigins:   []string{"*"},
	}
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenRouter, ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be positive, got %s", c.Timeout)
	}
	if c.Model == "" {
		return fmt.Errorf("AI_MODEL must not be empty")
	}
	return nil
}

// HasAPIKey reports whether the provider credential is configured.
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}
