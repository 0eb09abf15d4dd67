package fetch

import "errors"

// Error kinds surfaced by the fetch pipeline. Browser and fallback failures
// wrap one of these sentinels so the orchestrator can classify them with
// errors.Is.
var (
	// ErrAuth means the remote browser credential is missing or was
	// rejected. Fatal: never retried.
	ErrAuth = errors.New("browser authentication failed")

	// ErrConnect means the remote browser endpoint could not be reached.
	ErrConnect = errors.New("browser connection failed")

	// ErrTransport covers network and protocol failures after a session
	// was established, and any non-2xx fallback response.
	ErrTransport = errors.New("transport failure")

	// ErrNavigationTimeout means the page did not finish loading within
	// the configured page timeout.
	ErrNavigationTimeout = errors.New("navigation timed out")

	// ErrEmptyContent means the rendered page source failed the minimal
	// validity check.
	ErrEmptyContent = errors.New("page content empty or too short")
)

// Transient reports whether err is worth another browser attempt.
// Auth failures are configuration errors and are never transient.
func Transient(err error) bool {
	return errors.Is(err, ErrConnect) ||
		errors.Is(err, ErrTransport) ||
		errors.Is(err, ErrNavigationTimeout) ||
		errors.Is(err, ErrEmptyContent)
}
