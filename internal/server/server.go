package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebScout/internal/api/middleware"
	"github.com/GriffinCanCode/WebScout/internal/config"
	"github.com/GriffinCanCode/WebScout/internal/extract"
	"github.com/GriffinCanCode/WebScout/internal/fetch"
	"github.com/GriffinCanCode/WebScout/internal/fetch/browser"
	"github.com/GriffinCanCode/WebScout/internal/fetch/fallback"
	"github.com/GriffinCanCode/WebScout/internal/logging"
	"github.com/GriffinCanCode/WebScout/internal/monitoring"
)

// Server wraps the HTTP server and the fetch pipeline it fronts.
type Server struct {
	cfg     *config.Config
	logger  *logging.Logger
	router  *gin.Engine
	httpSrv *http.Server
	metrics *monitoring.Metrics
}

// New assembles the fetch pipeline and wires it into a Gin router.
func New(cfg *config.Config, logger *logging.Logger) *Server {
	browserClient := browser.NewClient(cfg.Browser, logger)
	fallbackFetcher := fallback.NewFetcher(cfg.Fetch, logger)
	orchestrator := fetch.NewOrchestrator(browserClient, fallbackFetcher, cfg.Fetch, logger)
	extractor := extract.NewClient(cfg.Extract, logger)

	metrics := monitoring.NewMetrics()
	handlers := newHandlers(orchestrator, extractor, cfg.Reduce, metrics, logger)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(monitoring.Middleware(metrics))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit))
	}

	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/scrape", handlers.Scrape)
		api.POST("/extract", handlers.Extract)
	}

	return &Server{
		cfg:     cfg,
		logger:  logger,
		router:  router,
		metrics: metrics,
	}
}

// Run starts the HTTP server and blocks until ListenAndServe returns.
func (s *Server) Run() error {
	addr := net.JoinHostPort(s.cfg.Server.Host, s.cfg.Server.Port)
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("starting server", zap.String("addr", addr))
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	s.logger.Info("shutting down server")
	return s.httpSrv.Shutdown(ctx)
}
