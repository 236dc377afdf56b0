// Package main is the entry point for the content automation server.
//
// main() is deliberately thin:
//  1. Read configuration from environment variables
//  2. Create the logger
//  3. Build and start the server
//
// All actual logic lives in internal/ packages. The cmd/server/ layout is
// the standard Go convention for executable entry points; a second binary
// (say, a migration tool) would get its own cmd/ subdirectory.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sakif/content-automation/internal/generator"
	"github.com/sakif/content-automation/internal/server"
)

// logLevel maps LOG_LEVEL (debug/info/warn/error) to a slog level.
// Defaults to debug, matching local development.
func logLevel() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(),
	}))

	// === CONFIGURATION ===
	// Env vars with sensible local-dev defaults. Production deployments set
	// them all explicitly.
	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	dbPath := "data/content.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}

	// Ensure the data directory exists (like `mkdir -p`).
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// JWT_SECRET must be a long random string. Generate one with:
	//   JWT_SECRET=$(openssl rand -hex 32)
	// Every data route requires auth, so a missing secret is fatal.
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Error("JWT_SECRET not set — refusing to start without it")
		os.Exit(1)
	}

	// === GENERATION GATEWAY ===
	// OPENAI_API_KEY is the only required knob; base URL and model have
	// defaults and exist mainly to point at compatible or mock endpoints.
	openaiCfg := generator.DefaultConfig()
	openaiCfg.APIKey = os.Getenv("OPENAI_API_KEY")
	if openaiCfg.APIKey == "" {
		logger.Warn("OPENAI_API_KEY not set — /content/generate will fail")
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		openaiCfg.BaseURL = baseURL
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		openaiCfg.Model = model
	}

	// === CREATE AND START THE SERVER ===
	cfg := server.Config{
		Port:      port,
		DBPath:    dbPath,
		JWTSecret: jwtSecret,
		OpenAI:    openaiCfg,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until shutdown (Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
