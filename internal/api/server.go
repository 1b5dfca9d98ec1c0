// Package api exposes the study store and the report composers over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/cardiac-report-server/internal/domain"
	"github.com/cardiac-report-server/internal/report"
	"github.com/cardiac-report-server/internal/store"
)

// Server represents the HTTP server
type Server struct {
	cfg         *domain.Config
	log         *logrus.Logger
	router      *gin.Engine
	server      *http.Server
	store       store.Store
	composer    *report.Composer
	reportCache *lru.Cache[string, map[string]string]
	dbCheck     func(context.Context) error
}

// SetDatabaseCheck installs a readiness check the health endpoint calls,
// typically the postgres pool's Ping.
func (s *Server) SetDatabaseCheck(check func(context.Context) error) {
	s.dbCheck = check
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *domain.Config, studyStore store.Store, composer *report.Composer, logger *logrus.Logger) (*Server, error) {
	// Set Gin mode based on environment
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	cacheSize := cfg.Limits.ReportCacheSize
	if cacheSize <= 0 {
		cacheSize = 256
	}
	cache, err := lru.New[string, map[string]string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating report cache: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(logger))

	s := &Server{
		cfg:         cfg,
		log:         logger,
		router:      router,
		store:       studyStore,
		composer:    composer,
		reportCache: cache,
	}

	s.setupRoutes()
	return s, nil
}

// Router returns the gin engine, used by tests to drive requests directly.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.cfg.Server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	api.Use(authMiddleware(s.cfg.Auth.APIToken))
	api.Use(rateLimitMiddleware(s.cfg.Limits.RequestsPerSecond, s.cfg.Limits.Burst))
	{
		api.POST("/studies/:type/from-snapshot", s.handleSaveSnapshot)
		api.GET("/studies/:id", s.handleGetStudy)
		api.DELETE("/studies/:id", s.handleDeleteStudy)
		api.GET("/patients/:id/studies", s.handlePatientStudies)

		api.POST("/ingest/:type", s.handleIngestText)

		api.POST("/reports/:type", s.handleComposeReport)
		api.POST("/letter", s.handleComposeLetter)

		api.GET("/scenarios", s.handleListScenarios)
		api.GET("/scenarios/:name", s.handleGetScenario)

		api.GET("/export", s.handleExport)
		api.POST("/import", s.handleImport)
	}
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	if s.dbCheck == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	if err := s.dbCheck(c.Request.Context()); err != nil {
		s.log.WithError(err).Warn("Database check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}
