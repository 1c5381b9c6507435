package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HealthHandler reports whether the service can reach its store.
type HealthHandler struct {
	ping func() error
}

// NewHealthHandler creates a new HealthHandler. ping may be nil when the
// store has nothing to check.
func NewHealthHandler(ping func() error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// RegisterRoutes registers the health route with the Fiber app.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

// HandleHealth answers 200 when the store responds and 503 otherwise.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	now := time.Now().Format(time.RFC3339)
	if h.ping != nil {
		if err := h.ping(); err != nil {
			zap.S().Warnf("Health check failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"time":   now,
				"error":  err.Error(),
			})
		}
	}
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   now,
	})
}
