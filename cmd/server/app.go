package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/aadi101204/Task-Manager-Api/internal/config"
	"github.com/aadi101204/Task-Manager-Api/internal/notify"
	"github.com/aadi101204/Task-Manager-Api/internal/platform/postgres"
	"github.com/aadi101204/Task-Manager-Api/internal/platform/sendgrid"
	"github.com/aadi101204/Task-Manager-Api/internal/service"
	"github.com/aadi101204/Task-Manager-Api/internal/service/auth"
	"github.com/aadi101204/Task-Manager-Api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore    store.UserStore
	projectStore store.ProjectStore
	taskStore    store.TaskStore

	// Service interfaces
	jwtService     auth.JWTService
	passwordHasher auth.PasswordHasher
	userService    service.UserService
	projectService service.ProjectService
	taskService    service.TaskService

	// Notification pipeline
	queue      *notify.Queue
	dispatcher *notify.Dispatcher
	scheduler  *notify.Scheduler
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger,
// and database connection that must be established beforehand.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime", auth.TokenLifetime)

	// Initialize password hasher
	app.passwordHasher = auth.NewBcryptHasher(0)

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.projectStore = postgres.NewPostgresProjectStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	// Initialize notification pipeline. Without a SendGrid key the
	// pipeline stays in place but messages only reach the log.
	app.queue = notify.NewQueue(cfg.Notify.QueueSize)

	var sender notify.Sender
	if cfg.Email.SendGridAPIKey != "" {
		sender = sendgrid.NewSender(cfg.Email.SendGridAPIKey, cfg.Email.FromAddress, logger)
		logger.Info("SendGrid email sender initialized", "from", cfg.Email.FromAddress)
	} else {
		sender = notify.NewLogSender(logger)
		logger.Warn("No SendGrid API key configured, emails will be logged only")
	}

	dispatcherCfg := notify.DefaultDispatcherConfig()
	dispatcherCfg.WorkerCount = cfg.Notify.WorkerCount
	app.dispatcher = notify.NewDispatcher(app.queue, sender, dispatcherCfg, logger)

	// Initialize services
	app.userService, err = service.NewUserService(app.userStore, app.passwordHasher, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.projectService, err = service.NewProjectService(app.projectStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create project service: %w", err)
	}

	app.taskService, err = service.NewTaskService(
		db,
		app.taskStore,
		app.projectStore,
		app.userStore,
		app.queue,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	// Initialize the daily overdue digest
	digest := notify.NewDigestJob(app.userStore, app.taskStore, app.queue, logger)
	app.scheduler = notify.NewScheduler(digest, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the notification workers, the digest scheduler, and the HTTP
// server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	app.dispatcher.Start()
	app.scheduler.Start()

	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources. The
// dispatcher drains buffered notifications before the database closes.
func (app *application) cleanup() {
	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	if app.dispatcher != nil {
		done := make(chan struct{})
		go func() {
			app.dispatcher.Stop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(10 * time.Second):
			app.logger.Warn("Timed out waiting for notification dispatcher to drain")
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
