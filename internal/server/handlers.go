package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebScout/internal/config"
	"github.com/GriffinCanCode/WebScout/internal/extract"
	"github.com/GriffinCanCode/WebScout/internal/fetch"
	"github.com/GriffinCanCode/WebScout/internal/logging"
	"github.com/GriffinCanCode/WebScout/internal/monitoring"
	"github.com/GriffinCanCode/WebScout/internal/reduce"
)

// Fetcher is the page-retrieval dependency of the handlers.
type Fetcher interface {
	Fetch(ctx context.Context, target string) (fetch.Page, error)
}

// handlers holds the HTTP handler dependencies.
type handlers struct {
	fetcher   Fetcher
	extractor extract.Extractor
	reduceCfg config.ReduceConfig
	metrics   *monitoring.Metrics
	logger    *logging.Logger
}

func newHandlers(fetcher Fetcher, extractor extract.Extractor, reduceCfg config.ReduceConfig, metrics *monitoring.Metrics, logger *logging.Logger) *handlers {
	return &handlers{
		fetcher:   fetcher,
		extractor: extractor,
		reduceCfg: reduceCfg,
		metrics:   metrics,
		logger:    logger,
	}
}

type scrapeRequest struct {
	URL string `json:"url" binding:"required"`
}

type scrapeResponse struct {
	URL          string   `json:"url"`
	Title        string   `json:"title,omitempty"`
	Chunks       []string `json:"chunks"`
	ChunkCount   int      `json:"chunk_count"`
	Preview      string   `json:"preview,omitempty"`
	FallbackUsed bool     `json:"fallback_used"`
	Attempts     int      `json:"attempts"`
}

// previewMaxLength bounds the sanitized raw-markup preview echoed back to
// clients for inspection.
const previewMaxLength = 4096

func pagePreview(rawMarkup string) string {
	preview := reduce.SanitizePreview(rawMarkup)
	if len(preview) > previewMaxLength {
		preview = strings.ToValidUTF8(preview[:previewMaxLength], "")
	}
	return preview
}

type extractRequest struct {
	URL         string `json:"url" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type extractResponse struct {
	URL          string `json:"url"`
	Answer       string `json:"answer"`
	Empty        bool   `json:"empty"`
	Notice       string `json:"notice,omitempty"`
	FallbackUsed bool   `json:"fallback_used"`
}

// Health returns service health status.
func (h *handlers) Health(c *gin.Context) {
	h.metrics.UpdateUptime()
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "webscout",
	})
}

// Scrape fetches a page, reduces it, and returns the bounded chunks.
func (h *handlers) Scrape(c *gin.Context) {
	var req scrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	page, chunks, title, err := h.fetchAndReduce(c, req.URL)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, scrapeResponse{
		URL:          req.URL,
		Title:        title,
		Chunks:       chunks,
		ChunkCount:   len(chunks),
		Preview:      pagePreview(page.HTML),
		FallbackUsed: page.FallbackUsed,
		Attempts:     page.Attempts,
	})
}

// Extract fetches a page and runs LLM extraction over its reduced chunks.
func (h *handlers) Extract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url and description are required"})
		return
	}

	page, chunks, _, err := h.fetchAndReduce(c, req.URL)
	if err != nil {
		return
	}

	answer, err := h.extractor.Extract(c.Request.Context(), chunks, req.Description)
	if err != nil {
		h.logger.Error("extraction failed", zap.String("url", req.URL), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "extraction failed: " + err.Error()})
		return
	}

	resp := extractResponse{
		URL:          req.URL,
		Answer:       answer,
		FallbackUsed: page.FallbackUsed,
	}
	if answer == "" {
		resp.Empty = true
		resp.Notice = "no content matching the description was found"
	}
	c.JSON(http.StatusOK, resp)
}

// fetchAndReduce runs the fetch pipeline and the reduction steps, writing
// the error response itself on failure.
func (h *handlers) fetchAndReduce(c *gin.Context, target string) (fetch.Page, []string, string, error) {
	start := time.Now()
	page, err := h.fetcher.Fetch(c.Request.Context(), target)
	if err != nil {
		h.metrics.RecordScrape("error", time.Since(start), false)
		h.logger.Error("fetch failed", zap.String("url", target), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
			"hint":  "the target resisted both the browser and plain-HTTP paths; verify the URL and try again later",
		})
		return fetch.Page{}, nil, "", err
	}
	h.metrics.RecordScrape("success", time.Since(start), page.FallbackUsed)

	body := reduce.ExtractBody(page.HTML)
	cleaned := reduce.Clean(body)
	chunks := reduce.SplitBounded(cleaned, h.reduceCfg.MaxChunkLength)
	if chunks == nil {
		// A contentless page still serializes as an empty array.
		chunks = []string{}
	}
	h.metrics.RecordReduction(len(cleaned), len(chunks))

	return page, chunks, reduce.Title(page.HTML), nil
}
