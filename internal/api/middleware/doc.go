// Package middleware provides Gin middleware for the HTTP API: CORS,
// per-IP rate limiting, and request correlation IDs.
package middleware
