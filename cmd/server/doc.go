// Package main is the entry point for the webscout server.
//
// The server fronts a resilient page-fetch pipeline: a remote
// captcha-solving browser with retry and exponential backoff, a plain
// HTTP fallback, content reduction into bounded chunks, and optional
// LLM extraction.
//
// Configuration is environment-driven (12-factor); see internal/config
// for the full variable list. AUTH carries the remote browser credential.
//
// Signals:
//   - SIGINT, SIGTERM: graceful shutdown
package main
