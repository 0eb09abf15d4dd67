// Package monitoring provides Prometheus metrics for the fetch pipeline
// and the HTTP API.
//
// Metrics cover three areas: HTTP request counts and latencies, fetch
// outcomes (including fallback usage), and content reduction sizes.
// All collectors are registered with the default registry via promauto
// and exposed through the /metrics endpoint.
package monitoring
