package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is loaded from the environment. Provider keys are optional: a
// missing key disables that provider instead of failing startup.
type Config struct {
	Port int `env:"PORT" envDefault:"8080"`

	AnthropicAPIKey  string `env:"ANTHROPIC_API_KEY"`
	AnthropicBaseURL string `env:"ANTHROPIC_BASE_URL" envDefault:"https://api.anthropic.com"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`

	MaxOutputTokens int           `env:"MAX_OUTPUT_TOKENS" envDefault:"4096"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"120s"`

	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"20"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`

	// ChatStore selects the session store backend: "memory" or "sqlite".
	ChatStore string `env:"CHAT_STORE" envDefault:"memory"`
	SQLiteDSN string `env:"SQLITE_DSN" envDefault:"file::memory:?cache=shared"`

	// Setting REDIS_ADDR switches rate limiting to a shared Redis window.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	CORSAllowOrigin string `env:"CORS_ALLOW_ORIGIN" envDefault:"*"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.ChatStore != "memory" && cfg.ChatStore != "sqlite" {
		return Config{}, fmt.Errorf("unsupported CHAT_STORE=%q", cfg.ChatStore)
	}
	return cfg, nil
}

// AnthropicConfigured reports whether the Anthropic provider can be used.
func (c Config) AnthropicConfigured() bool { return c.AnthropicAPIKey != "" }

// OpenAIConfigured reports whether the OpenAI provider can be used.
func (c Config) OpenAIConfigured() bool { return c.OpenAIAPIKey != "" }
