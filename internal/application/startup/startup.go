// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/PageCraftHQ/pagecraft-go/internal/application/container"
	schema "github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/database"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/logging"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/persistence/database"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/security"
	"github.com/PageCraftHQ/pagecraft-go/internal/presentation/http/server"
	"github.com/PageCraftHQ/pagecraft-go/pkg/config"
	"github.com/gin-gonic/gin"
)

// Initialize performs the complete startup sequence
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	log.Println("PageCraft starting...")

	// Step 1: Initialize structured logging
	logger, err := logging.NewChanneledLogger(nil)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	for _, name := range strings.Split(config.DebugChannels, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if err := logger.SetChannelLevel(logging.Channel(name), slog.LevelDebug); err != nil {
			logger.Startup().Warn("Ignoring unknown debug channel", "channel", name)
		}
	}

	// A missing JWT secret gets an ephemeral one; sessions then only survive
	// until the next restart.
	if config.JWTSecret == "" {
		secret, err := security.GenerateSecureKey(64)
		if err != nil {
			return fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		config.JWTSecret = secret
		logger.Startup().Warn("JWT_SECRET not set, generated an ephemeral secret for this process")
	}

	// Step 2: Open the database connection
	logger.Startup().Info("Opening database connection", "driver", config.DBDriver)
	if config.DBDriver == "libsql" {
		if err := database.TestTursoConnection(config.TursoDatabaseURL, config.TursoAuthToken); err != nil {
			return fmt.Errorf("turso connection check failed: %w", err)
		}
		logger.Startup().Info("Turso connection verified")
	}
	dsn, err := database.DataSourceName()
	if err != nil {
		return fmt.Errorf("failed to resolve data source: %w", err)
	}
	db, err := database.NewConnectionWithLogger(config.DBDriver, dsn, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Step 3: Ensure schema exists
	logger.Startup().Info("Ensuring database schema...")
	schemaStart := time.Now()
	tableCreator := schema.NewTableCreator()
	if err := tableCreator.CreateSchema(db.DB); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	logger.LogStartupPhase("schema", time.Since(schemaStart), true, nil)

	// Step 4: Create dependency injection container
	logger.Startup().Info("Initializing dependency injection container...")
	appContainer := container.NewContainer(db, logger)
	logger.Startup().Info("Dependency injection container created with singleton services")

	// Step 5: Start HTTP server
	logger.Startup().Info("Starting HTTP server...")
	port := config.Port
	httpServer := server.New(port, appContainer)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"port", port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
