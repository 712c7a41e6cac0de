package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-queue/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Issues *handlers.IssuesHandler
	Queues *handlers.QueuesHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	api := app.Group("/api")
	api.Post("/issues", cfg.Issues.Submit)
	api.Get("/issues/:id", cfg.Issues.Get)
	api.Post("/book", cfg.Issues.Book)
	api.Post("/slots-availability", cfg.Issues.Availability)

	api.Get("/queues", cfg.Queues.Snapshot)
	api.Get("/pending", cfg.Queues.Pending)
	api.Get("/completed", cfg.Queues.Completed)
	api.Post("/serve", cfg.Queues.Serve)
	api.Post("/reset", cfg.Queues.Reset)
}
