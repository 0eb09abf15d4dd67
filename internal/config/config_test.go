package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	// Browser config
	assert.Empty(t, cfg.Browser.Auth)
	assert.Equal(t, "brd.superproxy.io:9222", cfg.Browser.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.Browser.PageTimeout)
	assert.Equal(t, 10*time.Second, cfg.Browser.CaptchaTimeout)

	// Fetch config
	assert.Equal(t, 3, cfg.Fetch.MaxRetries)
	assert.Equal(t, 10*time.Second, cfg.Fetch.FallbackTimeout)

	// Reduce config
	assert.Equal(t, 6000, cfg.Reduce.MaxChunkLength)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
}

func TestLoadOrDefault(t *testing.T) {
	// Should return default when no env vars set
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, 3, cfg.Fetch.MaxRetries)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":             "9000",
		"HOST":             "127.0.0.1",
		"AUTH":             "brd-customer-zone:secret",
		"BROWSER_ENDPOINT": "browser.example.com:9222",
		"PAGE_TIMEOUT":     "45s",
		"CAPTCHA_TIMEOUT":  "5s",
		"MAX_RETRIES":      "5",
		"MAX_CHUNK_LENGTH": "4000",
		"LOG_LEVEL":        "debug",
		"LOG_DEV":          "true",
	}

	for key, value := range envVars {
		os.Setenv(key, value)
	}
	defer func() {
		for key := range envVars {
			os.Unsetenv(key)
		}
	}()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "brd-customer-zone:secret", cfg.Browser.Auth)
	assert.Equal(t, "browser.example.com:9222", cfg.Browser.Endpoint)
	assert.Equal(t, 45*time.Second, cfg.Browser.PageTimeout)
	assert.Equal(t, 5*time.Second, cfg.Browser.CaptchaTimeout)
	assert.Equal(t, 5, cfg.Fetch.MaxRetries)
	assert.Equal(t, 4000, cfg.Reduce.MaxChunkLength)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
}
