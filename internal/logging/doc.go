// Package logging provides structured logging using uber/zap.
//
// This package offers production-ready logging with two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Fetch attempts, captcha outcomes and fallback decisions are all logged
// through this package with structured fields, so a single failed scrape can
// be reconstructed from the log stream alone.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Fetch attempt", zap.Int("attempt", 1), zap.String("url", url))
//	logger.Error("Fetch failed", zap.Error(err))
package logging
