// Package fallback provides the plain-HTTP fetch path used once the
// browser path is exhausted: a single GET with a realistic browser
// User-Agent and a short fixed timeout, no JavaScript execution.
//
// The client runs behind a lenient circuit breaker so a run of dead
// targets cannot pile up slow connection attempts.
package fallback
