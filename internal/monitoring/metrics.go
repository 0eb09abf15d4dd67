package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the scrape service.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Fetch pipeline metrics
	ScrapesTotal   *prometheus.CounterVec
	ScrapeDuration prometheus.Histogram
	FallbacksTotal prometheus.Counter

	// Reduction metrics
	PagesReduced   prometheus.Counter
	ChunksPerPage  prometheus.Histogram
	CleanedBytes   prometheus.Histogram

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webscout_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webscout_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.01, .05, .1, .5, 1, 5, 15, 30, 60, 120},
			},
			[]string{"method", "path"},
		),

		ScrapesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webscout_scrapes_total",
				Help: "Total page fetches by outcome",
			},
			[]string{"outcome"},
		),
		ScrapeDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "webscout_scrape_duration_seconds",
				Help:    "End-to-end fetch duration in seconds",
				Buckets: []float64{.5, 1, 2, 5, 10, 30, 60, 120},
			},
		),
		FallbacksTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "webscout_fallback_fetches_total",
				Help: "Fetches served by the plain-HTTP fallback path",
			},
		),

		PagesReduced: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "webscout_pages_reduced_total",
				Help: "Pages run through the content reduction pipeline",
			},
		),
		ChunksPerPage: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "webscout_chunks_per_page",
				Help:    "Bounded chunks produced per page",
				Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
			},
		),
		CleanedBytes: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "webscout_cleaned_bytes",
				Help:    "Cleaned text size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
		),

		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "webscout_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
	}
}

// RecordHTTPRequest records a completed HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordScrape records a completed fetch with its outcome.
func (m *Metrics) RecordScrape(outcome string, duration time.Duration, fallbackUsed bool) {
	m.ScrapesTotal.WithLabelValues(outcome).Inc()
	m.ScrapeDuration.Observe(duration.Seconds())
	if fallbackUsed {
		m.FallbacksTotal.Inc()
	}
}

// RecordReduction records a page reduction.
func (m *Metrics) RecordReduction(cleanedBytes, chunks int) {
	m.PagesReduced.Inc()
	m.ChunksPerPage.Observe(float64(chunks))
	m.CleanedBytes.Observe(float64(cleanedBytes))
}

// UpdateUptime refreshes the uptime gauge.
func (m *Metrics) UpdateUptime() {
	m.Uptime.Set(time.Since(m.startTime).Seconds())
}
