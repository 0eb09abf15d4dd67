package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebScout/internal/config"
	"github.com/GriffinCanCode/WebScout/internal/fetch"
	"github.com/GriffinCanCode/WebScout/internal/logging"
)

// minContentLength is the minimal validity check on rendered page source.
const minContentLength = 100

// Client fetches pages through the remote scraping browser. It opens one
// session per Fetch call and never holds a session across calls.
type Client struct {
	cfg    config.BrowserConfig
	logger *logging.Logger
	dial   dialFunc
}

// NewClient creates a browser client for the configured endpoint.
func NewClient(cfg config.BrowserConfig, logger *logging.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger,
		dial:   dialCDP,
	}
}

// Validate checks that the endpoint credential is present. Called by the
// orchestrator before the first attempt; a missing credential is fatal
// and never retried.
func (c *Client) Validate() error {
	if strings.TrimSpace(c.cfg.Auth) == "" {
		return fmt.Errorf("%w: AUTH is not set", fetch.ErrAuth)
	}
	return nil
}

// Fetch opens a session, navigates to target, waits best-effort for
// captcha resolution and returns the rendered page source. The session is
// released on every exit path.
func (c *Client) Fetch(ctx context.Context, target string) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	d, err := c.dial(ctx, c.cfg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", fetch.ErrConnect, err)
	}
	defer d.Release()

	c.logger.Info("Remote browser session established", zap.String("url", target))

	if err := d.Navigate(target); err != nil {
		return "", classifyNavigate(err)
	}

	status, werr := d.WaitCaptcha()
	switch status {
	case CaptchaResolved:
		c.logger.Info("Captcha resolved", zap.String("url", target))
	case CaptchaNotDetected:
		c.logger.Debug("No captcha detected", zap.String("url", target))
	default:
		// Non-fatal: the challenge may simply be absent, or the endpoint
		// may not support the solver. Read the page regardless.
		c.logger.Warn("Captcha wait failed, continuing",
			zap.String("url", target),
			zap.Error(werr),
		)
	}

	html, err := d.PageSource()
	if err != nil {
		return "", fmt.Errorf("%w: reading page source: %v", fetch.ErrTransport, err)
	}

	if len(html) <= minContentLength {
		return "", fmt.Errorf("%w: rendered %d bytes", fetch.ErrEmptyContent, len(html))
	}

	c.logger.Info("Page source captured",
		zap.String("url", target),
		zap.Int("bytes", len(html)),
	)
	return html, nil
}

// classifyNavigate maps navigation failures onto pipeline error kinds.
func classifyNavigate(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", fetch.ErrNavigationTimeout, err)
	}
	return fmt.Errorf("%w: navigation: %v", fetch.ErrTransport, err)
}
