/*
Package fetch implements the resilient page fetch pipeline.

# Strategy

The orchestrator tries the remote scraping browser first, up to maxRetries
times with deterministic exponential backoff (1s, 2s, 4s, ...). Auth
failures abort immediately; every other failure (connect, transport,
navigation timeout, empty content, unclassified) burns one of the
remaining attempts. When the browser path is
exhausted, a single plain-HTTP fallback attempt is made. If both paths
fail, the returned error chains the last browser error and the fallback
error so the caller sees the full story.

Each fetch call owns its own browser session; nothing is shared between
attempts or concurrent callers.

# Usage

	browser := browser.NewClient(cfg.Browser, logger)
	fallback := fallback.NewFetcher(cfg.Fetch, logger)
	orch := fetch.NewOrchestrator(browser, fallback, cfg.Fetch, logger)

	page, err := orch.Fetch(ctx, "https://example.com")
*/
package fetch
