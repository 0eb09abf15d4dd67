package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Fetch     FetchConfig
	Reduce    ReduceConfig
	Extract   ExtractConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// BrowserConfig holds remote scraping-browser configuration.
//
// Auth is the credential embedded in the websocket endpoint URL. It is read
// once at startup; an empty value is surfaced as a fatal auth error on the
// first fetch attempt, never retried.
type BrowserConfig struct {
	Auth           string        `envconfig:"AUTH" default:""`
	Endpoint       string        `envconfig:"BROWSER_ENDPOINT" default:"brd.superproxy.io:9222"`
	PageTimeout    time.Duration `envconfig:"PAGE_TIMEOUT" default:"30s"`
	ElementWait    time.Duration `envconfig:"ELEMENT_WAIT" default:"10s"`
	CaptchaTimeout time.Duration `envconfig:"CAPTCHA_TIMEOUT" default:"10s"`
}

// FetchConfig holds retry and fallback configuration.
type FetchConfig struct {
	MaxRetries      int           `envconfig:"MAX_RETRIES" default:"3"`
	FallbackTimeout time.Duration `envconfig:"FALLBACK_TIMEOUT" default:"10s"`
}

// ReduceConfig holds content reduction configuration.
type ReduceConfig struct {
	MaxChunkLength int `envconfig:"MAX_CHUNK_LENGTH" default:"6000"`
}

// ExtractConfig holds downstream LLM extraction configuration.
type ExtractConfig struct {
	BaseURL string `envconfig:"LLM_BASE_URL" default:"https://api.together.xyz/v1"`
	APIKey  string `envconfig:"LLM_API_KEY" default:""`
	Model   string `envconfig:"LLM_MODEL" default:"meta-llama/Llama-3.3-70B-Instruct-Turbo"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"10"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"20"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Browser: BrowserConfig{
			Endpoint:       "brd.superproxy.io:9222",
			PageTimeout:    30 * time.Second,
			ElementWait:    10 * time.Second,
			CaptchaTimeout: 10 * time.Second,
		},
		Fetch: FetchConfig{
			MaxRetries:      3,
			FallbackTimeout: 10 * time.Second,
		},
		Reduce: ReduceConfig{
			MaxChunkLength: 6000,
		},
		Extract: ExtractConfig{
			BaseURL: "https://api.together.xyz/v1",
			Model:   "meta-llama/Llama-3.3-70B-Instruct-Turbo",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 10,
			Burst:             20,
			Enabled:           true,
		},
	}
}
