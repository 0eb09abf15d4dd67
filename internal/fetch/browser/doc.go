/*
Package browser opens remote scraping-browser sessions over the Chrome
DevTools Protocol.

Each Fetch call dials the credentialed websocket endpoint, navigates,
makes a best-effort wait for the endpoint's captcha solver, reads the
fully rendered page source and releases the session. Release is
guaranteed on every exit path and a release failure never masks the
fetch outcome.

The captcha wait is observability-only: its outcome (resolved, not
detected, or failed) is logged and never affects control flow. The
endpoint's solver may be absent entirely; that surfaces as the same
non-fatal failed outcome.

Built on:
  - chromedp: remote allocator, navigation, page-source read
  - cdproto: stealth init script, raw CDP commands (Captcha.waitForSolve)
*/
package browser
