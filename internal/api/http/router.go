package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/ticket-dashboard/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Tickets   *handlers.TicketsHandler
	Metrics   *prometheus.Registry
	StaticDir string
}

// RegisterRoutes wires HTTP routes. Literal ticket paths are registered before
// the :id parameter so /api/tickets/stats is never read as a ticket id.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Health)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	api.Get("/stats", cfg.Tickets.Stats)
	api.Get("/tickets", cfg.Tickets.ListTickets)
	api.Get("/tickets/stats", cfg.Tickets.Stats)
	api.Get("/tickets/closed", cfg.Tickets.ListClosed)
	api.Post("/tickets/add", cfg.Tickets.AddTicket)
	api.Get("/tickets/:ticketId/messages", cfg.Tickets.Messages)
	api.Get("/tickets/:id", cfg.Tickets.GetTicket)

	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
	}
	app.Use(notFoundHandler)
}
