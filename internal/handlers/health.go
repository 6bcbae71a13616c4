package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/lessonsync/internal/utils"
)

// Health handles GET /api/health
// @Summary Liveness check
// @Description Reports "ok" when the document store answers a read
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *Handler) Health(c *fiber.Ctx) error {
	result := h.Service.HealthCheck(c.UserContext())
	if result.Status != "ok" {
		h.Log.Warn("health check failed", "store", result.Store)
		return utils.SuccessResponse(c, result, fiber.StatusServiceUnavailable)
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}
