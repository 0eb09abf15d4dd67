package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/GriffinCanCode/WebScout/internal/config"
)

// stealthScript suppresses the most common automation-detection signals
// before any page script runs.
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
Object.defineProperty(navigator, 'plugins', { get: () => [1, 2, 3, 4, 5] });
Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
window.chrome = window.chrome || { runtime: {} };
`

// driver is one live remote browser session. Release must be safe to call
// exactly once per session; the chromedp implementation guards it with a
// sync.Once so all exit paths can defer it.
type driver interface {
	Navigate(target string) error
	WaitCaptcha() (CaptchaStatus, error)
	PageSource() (string, error)
	Release()
}

// dialFunc opens a session; swapped out in tests.
type dialFunc func(ctx context.Context, cfg config.BrowserConfig) (driver, error)

// cdpDriver drives a remote session over the Chrome DevTools Protocol.
type cdpDriver struct {
	ctx         context.Context
	cfg         config.BrowserConfig
	cancelSess  context.CancelFunc
	cancelAlloc context.CancelFunc
	releaseOnce sync.Once
}

// dialCDP connects to the remote scraping browser and installs the stealth
// init script. The credential travels in the websocket URL userinfo, so the
// URL must not be rewritten by the allocator.
func dialCDP(ctx context.Context, cfg config.BrowserConfig) (driver, error) {
	endpoint := fmt.Sprintf("wss://%s@%s", cfg.Auth, cfg.Endpoint)

	allocCtx, cancelAlloc := chromedp.NewRemoteAllocator(ctx, endpoint, chromedp.NoModifyURL)
	sessCtx, cancelSess := chromedp.NewContext(allocCtx)

	d := &cdpDriver{
		ctx:         sessCtx,
		cfg:         cfg,
		cancelSess:  cancelSess,
		cancelAlloc: cancelAlloc,
	}

	// Running an action forces the websocket dial, so connection failures
	// surface here instead of on first navigation.
	err := chromedp.Run(sessCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		_, scriptErr := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
		return scriptErr
	}))
	if err != nil {
		d.Release()
		return nil, err
	}

	return d, nil
}

// Navigate loads the target and waits for the document body, each step
// bounded by its configured timeout.
func (d *cdpDriver) Navigate(target string) error {
	navCtx, cancel := context.WithTimeout(d.ctx, d.cfg.PageTimeout)
	defer cancel()

	if err := chromedp.Run(navCtx, chromedp.Navigate(target)); err != nil {
		return err
	}

	readyCtx, cancelReady := context.WithTimeout(d.ctx, d.cfg.ElementWait)
	defer cancelReady()

	return chromedp.Run(readyCtx, chromedp.WaitReady("body", chromedp.ByQuery))
}

// WaitCaptcha asks the endpoint's solver to wait for challenge resolution.
func (d *cdpDriver) WaitCaptcha() (CaptchaStatus, error) {
	// The command itself carries a detect timeout; the context deadline
	// covers an endpoint that never answers at all.
	waitCtx, cancel := context.WithTimeout(d.ctx, d.cfg.CaptchaTimeout+5*time.Second)
	defer cancel()

	params := &captchaSolveParams{DetectTimeout: d.cfg.CaptchaTimeout.Milliseconds()}
	var reply captchaSolveReply

	err := chromedp.Run(waitCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		return cdp.Execute(ctx, "Captcha.waitForSolve", params, &reply)
	}))
	if err != nil {
		return CaptchaWaitFailed, err
	}

	status := statusFromReply(reply)
	if status == CaptchaWaitFailed {
		return status, fmt.Errorf("solver reported status %q", reply.Status)
	}
	return status, nil
}

// PageSource reads the fully rendered document markup. Bounded like the
// other session commands so a wedged renderer cannot hold the attempt.
func (d *cdpDriver) PageSource() (string, error) {
	srcCtx, cancel := context.WithTimeout(d.ctx, d.cfg.PageTimeout)
	defer cancel()

	var html string
	err := chromedp.Run(srcCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

// Release closes the remote session. Close errors are swallowed so a
// failed release never masks the fetch outcome.
func (d *cdpDriver) Release() {
	d.releaseOnce.Do(func() {
		_ = chromedp.Cancel(d.ctx)
		d.cancelSess()
		d.cancelAlloc()
	})
}
