// Package server exposes the AgentWatch dashboard over HTTP: a filter form,
// the passive trends panel, report generation and the export actions.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Mnafierce/agentwatch/internal/config"
	"github.com/Mnafierce/agentwatch/internal/export"
	"github.com/Mnafierce/agentwatch/internal/logger"
	"github.com/Mnafierce/agentwatch/internal/report"
	"github.com/Mnafierce/agentwatch/internal/trendwatch"
)

// Server represents the HTTP server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	assembler  *report.Assembler
	watcher    *trendwatch.Watcher
	pdf        *export.PDFRenderer
	notion     *export.NotionClient
	renderer   *TemplateRenderer
	log        *slog.Logger
}

// New creates a new HTTP server instance wired to the aggregation pipeline.
func New(cfg config.Server, assembler *report.Assembler, watcher *trendwatch.Watcher, pdf *export.PDFRenderer, notion *export.NotionClient) (*Server, error) {
	log := logger.Get()

	renderer, err := NewTemplateRenderer(cfg.TemplateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize template renderer: %w", err)
	}

	s := &Server{
		router:    chi.NewRouter(),
		assembler: assembler,
		watcher:   watcher,
		pdf:       pdf,
		notion:    notion,
		renderer:  renderer,
		log:       log,
	}

	s.setupMiddleware()
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  config.Duration(cfg.ReadTimeout, 15*time.Second),
		WriteTimeout: config.Duration(cfg.WriteTimeout, 60*time.Second),
	}

	return s, nil
}

// setupMiddleware configures middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
}

// setupRoutes registers the dashboard routes
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleDashboard)
	s.router.Post("/report", s.handleReport)
	s.router.Post("/refresh", s.handleRefresh)
	s.router.Post("/export/pdf", s.handleExportPDF)
	s.router.Post("/export/notion", s.handleExportNotion)
	s.router.Get("/healthz", s.handleHealth)
}

// Start begins listening for HTTP requests. It blocks until the server
// stops.
func (s *Server) Start() error {
	s.log.Info("Starting HTTP server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Router returns the underlying router, primarily for tests.
func (s *Server) Router() *chi.Mux {
	return s.router
}
