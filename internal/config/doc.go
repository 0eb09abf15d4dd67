// Package config provides environment-based configuration management.
//
// Configuration is loaded from environment variables using envconfig with
// sensible defaults for local development. The scraping-browser credential
// (AUTH) intentionally has no default: its absence is a fatal auth error
// raised on the first fetch attempt rather than at load time, so the server
// can still start and report readable errors.
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Println(cfg.Fetch.MaxRetries)
package config
