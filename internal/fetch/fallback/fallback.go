package fallback

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebScout/internal/config"
	"github.com/GriffinCanCode/WebScout/internal/fetch"
	"github.com/GriffinCanCode/WebScout/internal/logging"
	"github.com/GriffinCanCode/WebScout/internal/resilience"
)

// browserUserAgent makes the plain GET look like an ordinary browser visit.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Fetcher performs the last-resort plain HTTP fetch: one GET, no
// JavaScript, no internal retry. Retrying the fallback is nobody's
// responsibility; it is already the final strategy.
type Fetcher struct {
	client  *resty.Client
	breaker *resilience.Breaker
	logger  *logging.Logger
}

// NewFetcher creates the fallback HTTP fetcher.
func NewFetcher(cfg config.FetchConfig, logger *logging.Logger) *Fetcher {
	timeout := cfg.FallbackTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	// The retryable client contributes its hardened transport; its own
	// retry loop stays off because the fallback is single-attempt.
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", browserUserAgent).
		SetTransport(retryClient.HTTPClient.Transport)

	breaker := resilience.New("fallback-http", resilience.Settings{
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			// Target sites vary wildly in reliability; trip only on a
			// sustained failure streak.
			return counts.ConsecutiveFailures >= 10
		},
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Fetcher{
		client:  client,
		breaker: breaker,
		logger:  logger,
	}
}

// Fetch performs the single GET. Any transport failure or non-2xx status
// is surfaced as a transport error.
func (f *Fetcher) Fetch(ctx context.Context, target string) (string, error) {
	f.logger.Info("Fallback fetch", zap.String("url", target))

	result, err := f.breaker.Execute(func() (interface{}, error) {
		return f.client.R().SetContext(ctx).Get(target)
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", fetch.ErrTransport, err)
	}

	resp := result.(*resty.Response)
	if !resp.IsSuccess() {
		return "", fmt.Errorf("%w: status %d", fetch.ErrTransport, resp.StatusCode())
	}

	return resp.String(), nil
}
