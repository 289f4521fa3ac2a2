// Package server exposes the assistant over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	datascribe "github.com/ManojS35/data-scribe-agent"
	"github.com/ManojS35/data-scribe-agent/assistant"
	"github.com/ManojS35/data-scribe-agent/catalog"
	"github.com/ManojS35/data-scribe-agent/config"
	"github.com/ManojS35/data-scribe-agent/metrics"
)

const (
	EndPointHealth     = "/health"
	EndPointQuery      = "/api/v1/query"
	EndPointCategories = "/api/v1/categories"
	EndPointInsights   = "/api/v1/insights"
	EndPointWelcome    = "/api/v1/welcome"
)

const shutdownTimeout = 10 * time.Second

// Server routes HTTP requests to the assistant and catalog.
type Server struct {
	cfg       *config.Config
	assistant *assistant.Assistant
	catalog   *catalog.Catalog
	log       logrus.FieldLogger
	router    *gin.Engine

	now   func() time.Time
	newID func() string
}

// New wires the router. cfg must already be validated.
func New(cfg *config.Config, a *assistant.Assistant, cat *catalog.Catalog, log logrus.FieldLogger) *Server {
	s := &Server{
		cfg:       cfg,
		assistant: a,
		catalog:   cat,
		log:       log,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(s.log), cors(s.cfg.Server.AllowedOrigins))

	router.GET(EndPointHealth, s.health)
	if s.cfg.Metrics.Enabled {
		metrics.Register()
		router.GET(s.cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	api := router.Group("/")
	if s.cfg.Server.RateLimit > 0 {
		api.Use(rateLimit(s.cfg.Server.RateLimit, s.cfg.Server.RateBurst, s.log))
	}
	{
		api.POST(EndPointQuery, s.query)
		api.GET(EndPointCategories, s.categories)
		api.GET(EndPointInsights, s.insights)
		api.GET(EndPointWelcome, s.welcome)
	}
	return router
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", srv.Addr).Info("datascribe server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "datascribe",
		"version": datascribe.Version,
	})
}
