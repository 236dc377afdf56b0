// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the "composition root" — the one place where the whole dependency
// chain is assembled:
//
//	sqlite.DB → services (auth, content, analytics) → handlers → routes
//
// Each layer only receives what it needs: services get repository
// interfaces, handlers get services. Nothing below this package knows the
// concrete types above it. Keeping the wiring out of main.go means tests
// can build a full server without running the binary.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/content-automation/internal/auth"
	"github.com/sakif/content-automation/internal/generator"
	"github.com/sakif/content-automation/internal/handler"
	"github.com/sakif/content-automation/internal/middleware"
	sqliteRepo "github.com/sakif/content-automation/internal/repository/sqlite"
	"github.com/sakif/content-automation/internal/service"
)

// Config holds server configuration, loaded from the environment by main.go.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string
	OpenAI    generator.Config
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown so the WAL is flushed and the file lock
// released.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server with all dependencies wired.
//
// An empty or too-short JWT secret is a hard error: every data route sits
// behind token auth, so there is no useful degraded mode to fall back to.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close() // clean up the DB if route setup fails
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET  /                   → liveness message (public)
//	POST /auth/signup        → create an account (public)
//	POST /auth/login         → issue a bearer token (public)
//	POST /content/generate   → generate text via the gateway (auth)
//	POST /content/save       → store a content record (auth)
//	GET  /content/history    → list own records, newest first (auth)
//	GET  /content/{id}       → fetch one own record (auth)
//	GET  /analytics/         → usage report (auth)
//
// MIDDLEWARE ORDER MATTERS — it executes in registration order:
//  1. RequestID — assigns a unique ID to each request (for tracing)
//  2. RealIP — extracts the real client IP from proxy headers
//  3. Recoverer — catches panics and returns 500 instead of crashing
//  4. Logger — logs each request with timing info
//
// RequireAuth runs only on the content and analytics groups; signup and
// login must obviously work without a token.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	gen := generator.New(s.config.OpenAI, s.logger)

	// s.db (sqlite.DB) implements both repository interfaces; services
	// receive the interfaces, handlers receive the services.
	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	contentService := service.NewContentService(s.db, gen, s.logger)
	analyticsService := service.NewAnalyticsService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	contentHandler := handler.NewContentHandler(contentService, s.logger)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, s.logger)

	s.router.Get("/", handler.HandleStatus)

	s.router.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.HandleSignup)
		r.Post("/login", authHandler.HandleLogin)
	})

	requireAuth := auth.RequireAuth(tokens, s.db)

	s.router.Route("/content", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/generate", contentHandler.HandleGenerate)
		r.Post("/save", contentHandler.HandleSave)
		r.Get("/history", contentHandler.HandleHistory)
		r.Get("/{id}", contentHandler.HandleGetByID)
	})

	s.router.Route("/analytics", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", analyticsHandler.HandleReport)
	})

	return nil
}

// Handler exposes the configured router, mainly so tests can drive the full
// middleware + routing stack through httptest without opening a port.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the server's resources without going through Start's
// shutdown path. Start calls it itself; tests use it directly.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully:
//
//  1. Stop accepting new connections
//  2. Wait for in-flight requests to finish (30s timeout)
//  3. Close the database connection (flushes WAL, releases the file lock)
func (s *Server) Start() error {
	defer s.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		// Give in-flight requests 30 seconds to complete
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
