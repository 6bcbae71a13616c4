package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/lessonsync/internal/utils"
)

// Methods maps HTTP methods to the handler serving them on one route.
type Methods map[string]fiber.Handler

// Allowed lists the methods in a stable order.
func (m Methods) Allowed() []string {
	var out []string
	for _, method := range []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete} {
		if _, ok := m[method]; ok {
			out = append(out, method)
		}
	}
	return out
}

// Dispatch calls the handler for the request method. Any other method is
// answered with 405.
func Dispatch(m Methods) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if h, ok := m[c.Method()]; ok {
			return h(c)
		}
		return utils.MethodNotAllowedResponse(c)
	}
}
