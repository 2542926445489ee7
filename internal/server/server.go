// internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"isabella-notion/internal/common/config"
	"isabella-notion/internal/common/database"
	"isabella-notion/internal/common/logger"
	"isabella-notion/internal/common/observability"
	"isabella-notion/internal/models"
	"isabella-notion/internal/notify"
	"isabella-notion/internal/store"
)

// ConversationAnalyzer is the analysis capability the server exposes over
// HTTP. It cannot fail; degraded analyses surface as fallback values.
type ConversationAnalyzer interface {
	Analyze(ctx context.Context, conversation string) models.AnalysisResult
}

// Server is the HTTP layer over the analyzer and template generator.
type Server struct {
	cfg      *config.Config
	echo     *echo.Echo
	analyzer ConversationAnalyzer
	store    *store.TemplateStore
	notifier *notify.Notifier
	redis    *database.RedisClient
	obs      *observability.Observability
	logger   logger.Logger
}

// Options carries the optional collaborators. Template history, rate
// limiting and notifications are all skipped when their field is nil.
type Options struct {
	Store    *store.TemplateStore
	Notifier *notify.Notifier
	Redis    *database.RedisClient
	Obs      *observability.Observability
}

func NewServer(cfg *config.Config, analyzer ConversationAnalyzer, log logger.Logger, opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	s := &Server{
		cfg:      cfg,
		echo:     e,
		analyzer: analyzer,
		store:    opts.Store,
		notifier: opts.Notifier,
		redis:    opts.Redis,
		obs:      opts.Obs,
		logger:   log.With(map[string]interface{}{"component": "server"}),
	}

	if s.redis != nil {
		e.Use(RateLimiter(s.redis, cfg.Server.RateLimitPerMinute, s.logger))
	}

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/", s.handleRoot)
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/templates", s.handleListTemplates)
	s.echo.POST("/analyze-conversation", s.handleAnalyzeConversation)
	s.echo.POST("/generate-template", s.handleGenerateTemplate)
}

// Start runs the server and blocks until the context is cancelled, then
// shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := s.cfg.Server.Address()

	errCh := make(chan error, 1)
	go func() {
		if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server start: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(s.cfg.Server.ShutdownTimeout))
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return http.ErrServerClosed
	}
}

// Echo returns the underlying router, used by tests to drive requests
// without binding a port.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
