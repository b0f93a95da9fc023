// Package main implements the entry point for the task manager API
// server, which handles user accounts, projects, tasks, and the async
// email notifications that task changes produce.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/aadi101204/Task-Manager-Api/internal/config"
	"github.com/aadi101204/Task-Manager-Api/internal/platform/logger"
)

// main wires configuration, logging, the database, and the application
// together, then runs the HTTP server until shutdown.
func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run performs all initialization and blocks until the server exits.
func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if err := runMigrations(db, appLogger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
