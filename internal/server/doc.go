// Package server provides HTTP server setup for the scrape service.
//
// It assembles the fetch pipeline (browser client, fallback fetcher,
// orchestrator) and the LLM extractor, wires them behind a Gin router
// with CORS, rate limiting, request IDs, and Prometheus metrics, and
// handles graceful shutdown.
//
// Endpoints:
//   - GET  /health       service health
//   - GET  /metrics      Prometheus metrics
//   - POST /api/scrape   fetch a page and return its reduced chunks
//   - POST /api/extract  fetch a page and run LLM extraction over it
package server
