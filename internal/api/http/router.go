package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/verify-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Verify     *handlers.VerifyHandler
	WebsiteDir string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/verify", cfg.Verify.Verify)

	if cfg.WebsiteDir != "" {
		app.Static("/", cfg.WebsiteDir)
	}
}
