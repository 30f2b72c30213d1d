package handlers

import "github.com/gofiber/fiber/v2"

// GatewayProbe reports whether the chat-platform gateway connection is up.
type GatewayProbe interface {
	Ready() bool
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	gateway     GatewayProbe
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, gateway GatewayProbe) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, gateway: gateway}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking the gateway connection.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	depStatus := fiber.Map{}
	ready := true

	if h.gateway == nil || !h.gateway.Ready() {
		depStatus["discord_gateway"] = "disconnected"
		ready = false
	} else {
		depStatus["discord_gateway"] = "ok"
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}
