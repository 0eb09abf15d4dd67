package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebScout/internal/config"
	"github.com/GriffinCanCode/WebScout/internal/logging"
	"github.com/GriffinCanCode/WebScout/internal/resilience"
)

// Browser is the remote-browser fetch path. Validate is the credential
// preflight; Fetch opens one session, navigates and returns page source.
type Browser interface {
	Validate() error
	Fetch(ctx context.Context, target string) (string, error)
}

// Fallback is the plain-HTTP fetch path used after the browser path is
// exhausted.
type Fallback interface {
	Fetch(ctx context.Context, target string) (string, error)
}

// Page is the raw page markup with fetch metadata. The caller owns it;
// the orchestrator keeps no reference after returning.
type Page struct {
	HTML         string
	Attempts     int
	FallbackUsed bool
}

// Orchestrator drives bounded retries over the browser path and delegates
// to the fallback path exactly once on exhaustion.
type Orchestrator struct {
	browser  Browser
	fallback Fallback
	retries  int
	backoff  resilience.Backoff
	sleeper  resilience.Sleeper
	logger   *logging.Logger
}

// NewOrchestrator wires the two fetch paths with the configured retry bound.
func NewOrchestrator(browser Browser, fallback Fallback, cfg config.FetchConfig, logger *logging.Logger) *Orchestrator {
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 3
	}
	return &Orchestrator{
		browser:  browser,
		fallback: fallback,
		retries:  retries,
		backoff:  resilience.DefaultBackoff(),
		sleeper:  resilience.RealSleeper{},
		logger:   logger,
	}
}

// Fetch resolves target to raw page markup. The browser path gets up to
// maxRetries attempts with exponential backoff between them; every
// failure except an auth failure is retried. On exhaustion the fallback
// path gets a single attempt.
// The terminal error reports both the exhausted browser-path reason and
// the fallback failure.
func (o *Orchestrator) Fetch(ctx context.Context, target string) (Page, error) {
	if strings.TrimSpace(target) == "" {
		return Page{}, errors.New("fetch target must not be empty")
	}

	// Credentials are checked once, before any session is opened.
	if err := o.browser.Validate(); err != nil {
		o.logger.Error("Browser credential preflight failed", zap.Error(err))
		return Page{}, err
	}

	var browserErr error
	for attempt := 0; attempt < o.retries; attempt++ {
		o.logger.Info("Browser fetch attempt",
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", o.retries),
			zap.String("url", target),
		)

		html, err := o.browser.Fetch(ctx, target)
		if err == nil {
			return Page{HTML: html, Attempts: attempt + 1}, nil
		}

		if errors.Is(err, ErrAuth) {
			// Configuration failure mid-loop; never retried.
			return Page{}, err
		}

		// Everything except an auth failure gets the remaining attempts:
		// an error the browser client did not classify is as likely a
		// flaky session as a classified transport failure.
		browserErr = err
		o.logger.Warn("Browser fetch attempt failed",
			zap.Int("attempt", attempt+1),
			zap.Bool("transient", Transient(err)),
			zap.Error(err),
		)

		if attempt < o.retries-1 {
			delay := o.backoff.Delay(attempt)
			o.logger.Info("Retrying after backoff", zap.Duration("delay", delay))
			if serr := o.sleeper.Sleep(ctx, delay); serr != nil {
				return Page{}, fmt.Errorf("retry wait interrupted: %w", serr)
			}
		}
	}

	o.logger.Warn("Browser path exhausted, attempting plain HTTP fallback",
		zap.Int("attempts", o.retries),
		zap.Error(browserErr),
	)

	html, err := o.fallback.Fetch(ctx, target)
	if err != nil {
		return Page{}, fmt.Errorf("browser path exhausted after %d attempts: %w; fallback fetch failed: %w",
			o.retries, browserErr, err)
	}

	o.logger.Info("Fallback fetch succeeded", zap.String("url", target), zap.Int("bytes", len(html)))
	return Page{HTML: html, Attempts: o.retries, FallbackUsed: true}, nil
}
