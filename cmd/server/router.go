package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aadi101204/Task-Manager-Api/internal/api"
	apiMiddleware "github.com/aadi101204/Task-Manager-Api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.logger)
	projectHandler := api.NewProjectHandler(app.projectService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore)

	// Authentication and account endpoints. The user listing and deletion
	// routes are administrative and unauthenticated.
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Get("/users", authHandler.ListUsers)
		r.Delete("/{user_id}", authHandler.DeleteUser)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/me", authHandler.Me)
		})
	})

	// Project endpoints (protected)
	r.Route("/projects", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Post("/", projectHandler.Create)
		r.Get("/", projectHandler.List)
		r.Get("/{project_id}", projectHandler.Get)
		r.Patch("/{project_id}", projectHandler.Update)
		r.Delete("/{project_id}", projectHandler.Delete)
	})

	// Task endpoints (protected)
	r.Route("/tasks", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Post("/", taskHandler.Create)
		r.Get("/", taskHandler.List)
		r.Get("/{task_id}", taskHandler.Get)
		r.Patch("/{task_id}", taskHandler.Update)
		r.Delete("/{task_id}", taskHandler.Delete)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
