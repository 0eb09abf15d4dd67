package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/WebScout/internal/config"
	"github.com/GriffinCanCode/WebScout/internal/fetch"
	"github.com/GriffinCanCode/WebScout/internal/logging"
)

type stubDriver struct {
	navErr     error
	captcha    CaptchaStatus
	captchaErr error
	html       string
	sourceErr  error
	releases   int
}

func (d *stubDriver) Navigate(target string) error {
	return d.navErr
}

func (d *stubDriver) WaitCaptcha() (CaptchaStatus, error) {
	return d.captcha, d.captchaErr
}

func (d *stubDriver) PageSource() (string, error) {
	return d.html, d.sourceErr
}

func (d *stubDriver) Release() {
	d.releases++
}

func newTestClient(d *stubDriver, dialErr error) *Client {
	c := NewClient(config.BrowserConfig{Auth: "user:pass"}, logging.NewNop())
	c.dial = func(ctx context.Context, cfg config.BrowserConfig) (driver, error) {
		if dialErr != nil {
			return nil, dialErr
		}
		return d, nil
	}
	return c
}

func longHTML() string {
	return "<html><body>" + strings.Repeat("content ", 50) + "</body></html>"
}

func TestFetchReturnsPageSource(t *testing.T) {
	d := &stubDriver{captcha: CaptchaNotDetected, html: longHTML()}
	c := newTestClient(d, nil)

	html, err := c.Fetch(context.Background(), "https://example.com")
	require.NoError(t, err)

	assert.Equal(t, longHTML(), html)
	assert.Equal(t, 1, d.releases)
}

func TestFetchReleasesOnNavigationFailure(t *testing.T) {
	d := &stubDriver{navErr: errors.New("net::ERR_CONNECTION_RESET")}
	c := newTestClient(d, nil)

	_, err := c.Fetch(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, fetch.ErrTransport)
	assert.Equal(t, 1, d.releases)
}

func TestFetchClassifiesNavigationTimeout(t *testing.T) {
	d := &stubDriver{navErr: fmt.Errorf("run: %w", context.DeadlineExceeded)}
	c := newTestClient(d, nil)

	_, err := c.Fetch(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, fetch.ErrNavigationTimeout)
	assert.Equal(t, 1, d.releases)
}

func TestFetchCaptchaFailureIsNonFatal(t *testing.T) {
	d := &stubDriver{
		captcha:    CaptchaWaitFailed,
		captchaErr: errors.New("unknown command Captcha.waitForSolve"),
		html:       longHTML(),
	}
	c := newTestClient(d, nil)

	html, err := c.Fetch(context.Background(), "https://example.com")
	require.NoError(t, err)

	assert.Equal(t, longHTML(), html)
	assert.Equal(t, 1, d.releases)
}

func TestFetchReleasesOnEmptyContent(t *testing.T) {
	d := &stubDriver{captcha: CaptchaResolved, html: "<html></html>"}
	c := newTestClient(d, nil)

	_, err := c.Fetch(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, fetch.ErrEmptyContent)
	assert.Equal(t, 1, d.releases)
}

func TestFetchReleasesOnSourceReadFailure(t *testing.T) {
	d := &stubDriver{captcha: CaptchaNotDetected, sourceErr: errors.New("target crashed")}
	c := newTestClient(d, nil)

	_, err := c.Fetch(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, fetch.ErrTransport)
	assert.Equal(t, 1, d.releases)
}

func TestFetchDialFailureIsConnectError(t *testing.T) {
	c := newTestClient(nil, errors.New("websocket: bad handshake"))

	_, err := c.Fetch(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, fetch.ErrConnect)
}

func TestFetchMissingAuthNeverDials(t *testing.T) {
	dialed := false
	c := NewClient(config.BrowserConfig{}, logging.NewNop())
	c.dial = func(ctx context.Context, cfg config.BrowserConfig) (driver, error) {
		dialed = true
		return nil, nil
	}

	_, err := c.Fetch(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, fetch.ErrAuth)
	assert.False(t, dialed)
}

func TestValidate(t *testing.T) {
	c := NewClient(config.BrowserConfig{Auth: "user:pass"}, logging.NewNop())
	assert.NoError(t, c.Validate())

	c = NewClient(config.BrowserConfig{Auth: "   "}, logging.NewNop())
	assert.ErrorIs(t, c.Validate(), fetch.ErrAuth)
}

func TestCaptchaStatusMapping(t *testing.T) {
	assert.Equal(t, CaptchaResolved, statusFromReply(captchaSolveReply{Status: "solve_finished"}))
	assert.Equal(t, CaptchaNotDetected, statusFromReply(captchaSolveReply{Status: "not_detected"}))
	assert.Equal(t, CaptchaWaitFailed, statusFromReply(captchaSolveReply{Status: "solve_failed"}))
	assert.Equal(t, CaptchaWaitFailed, statusFromReply(captchaSolveReply{Status: ""}))
}

func TestCaptchaReplyUnmarshal(t *testing.T) {
	var reply captchaSolveReply
	err := reply.UnmarshalJSON([]byte(`{"status":"solve_finished","extra":{"ignored":true}}`))
	require.NoError(t, err)
	assert.Equal(t, "solve_finished", reply.Status)
}

func TestCaptchaParamsMarshal(t *testing.T) {
	params := &captchaSolveParams{DetectTimeout: 10000}
	data, err := params.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"detectTimeout":10000}`, string(data))
}
