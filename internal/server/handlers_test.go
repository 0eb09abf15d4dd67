package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/WebScout/internal/config"
	"github.com/GriffinCanCode/WebScout/internal/fetch"
	"github.com/GriffinCanCode/WebScout/internal/logging"
	"github.com/GriffinCanCode/WebScout/internal/monitoring"
)

type stubFetcher struct {
	page  fetch.Page
	err   error
	calls int
}

func (s *stubFetcher) Fetch(ctx context.Context, target string) (fetch.Page, error) {
	s.calls++
	return s.page, s.err
}

type stubExtractor struct {
	answer string
	err    error
	chunks []string
}

func (s *stubExtractor) Extract(ctx context.Context, chunks []string, description string) (string, error) {
	s.chunks = chunks
	return s.answer, s.err
}

var testMetrics = monitoring.NewMetrics()

func newTestRouter(t *testing.T, fetcher Fetcher, extractor *stubExtractor) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := newHandlers(fetcher, extractor, config.ReduceConfig{MaxChunkLength: 6000}, testMetrics, logging.NewNop())

	router := gin.New()
	router.GET("/health", h.Health)
	router.POST("/api/scrape", h.Scrape)
	router.POST("/api/extract", h.Extract)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{}, &stubExtractor{})

	w := doJSON(router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestScrapeReturnsChunks(t *testing.T) {
	fetcher := &stubFetcher{
		page: fetch.Page{
			HTML:     "<html><head><title>Example</title></head><body><p>hello world</p></body></html>",
			Attempts: 1,
		},
	}
	router := newTestRouter(t, fetcher, &stubExtractor{})

	w := doJSON(router, http.MethodPost, "/api/scrape", `{"url":"https://example.com"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp scrapeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://example.com", resp.URL)
	assert.Equal(t, "Example", resp.Title)
	assert.Equal(t, 1, resp.ChunkCount)
	assert.Contains(t, resp.Chunks[0], "hello world")
	assert.False(t, resp.FallbackUsed)
}

func TestScrapePreviewIsSanitized(t *testing.T) {
	fetcher := &stubFetcher{
		page: fetch.Page{
			HTML: `<html><body><p onclick="steal()">item</p><script>steal()</script></body></html>`,
		},
	}
	router := newTestRouter(t, fetcher, &stubExtractor{})

	w := doJSON(router, http.MethodPost, "/api/scrape", `{"url":"https://example.com"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp scrapeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Preview, "item")
	assert.NotContains(t, resp.Preview, "script")
	assert.NotContains(t, resp.Preview, "onclick")
}

func TestScrapePreviewIsBounded(t *testing.T) {
	fetcher := &stubFetcher{
		page: fetch.Page{
			HTML: "<html><body><p>" + strings.Repeat("x", 3*previewMaxLength) + "</p></body></html>",
		},
	}
	router := newTestRouter(t, fetcher, &stubExtractor{})

	w := doJSON(router, http.MethodPost, "/api/scrape", `{"url":"https://example.com"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp scrapeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.LessOrEqual(t, len(resp.Preview), previewMaxLength)
	assert.NotEmpty(t, resp.Preview)
}

func TestScrapeContentlessPageYieldsEmptyChunkArray(t *testing.T) {
	fetcher := &stubFetcher{
		page: fetch.Page{HTML: "<html><head><title>Blank</title></head></html>"},
	}
	router := newTestRouter(t, fetcher, &stubExtractor{})

	w := doJSON(router, http.MethodPost, "/api/scrape", `{"url":"https://example.com"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"chunks":[]`)

	var resp scrapeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.ChunkCount)
}

func TestScrapeMissingURL(t *testing.T) {
	fetcher := &stubFetcher{}
	router := newTestRouter(t, fetcher, &stubExtractor{})

	w := doJSON(router, http.MethodPost, "/api/scrape", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, fetcher.calls)
}

func TestScrapeFetchFailure(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("browser path exhausted after 3 attempts")}
	router := newTestRouter(t, fetcher, &stubExtractor{})

	w := doJSON(router, http.MethodPost, "/api/scrape", `{"url":"https://example.com"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "exhausted")
	assert.Contains(t, w.Body.String(), "hint")
}

func TestExtractReturnsAnswer(t *testing.T) {
	fetcher := &stubFetcher{
		page: fetch.Page{HTML: "<html><body><p>" + strings.Repeat("data ", 50) + "</p></body></html>"},
	}
	extractor := &stubExtractor{answer: "the data"}
	router := newTestRouter(t, fetcher, extractor)

	w := doJSON(router, http.MethodPost, "/api/extract", `{"url":"https://example.com","description":"the data"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp extractResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "the data", resp.Answer)
	assert.False(t, resp.Empty)
	assert.NotEmpty(t, extractor.chunks)
}

func TestExtractEmptyAnswer(t *testing.T) {
	fetcher := &stubFetcher{
		page: fetch.Page{HTML: "<html><body><p>nothing relevant here</p></body></html>"},
	}
	router := newTestRouter(t, fetcher, &stubExtractor{answer: ""})

	w := doJSON(router, http.MethodPost, "/api/extract", `{"url":"https://example.com","description":"prices"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp extractResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Empty)
	assert.NotEmpty(t, resp.Notice)
}

func TestExtractMissingDescription(t *testing.T) {
	fetcher := &stubFetcher{}
	router := newTestRouter(t, fetcher, &stubExtractor{})

	w := doJSON(router, http.MethodPost, "/api/extract", `{"url":"https://example.com"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, fetcher.calls)
}

func TestExtractLLMFailure(t *testing.T) {
	fetcher := &stubFetcher{
		page: fetch.Page{HTML: "<html><body><p>content</p></body></html>"},
	}
	router := newTestRouter(t, fetcher, &stubExtractor{err: errors.New("upstream unavailable")})

	w := doJSON(router, http.MethodPost, "/api/extract", `{"url":"https://example.com","description":"prices"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "extraction failed")
}
