package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CORS sets the cross-origin headers for a route serving methods and answers
// preflight OPTIONS requests with an empty 200.
func CORS(methods ...string) fiber.Handler {
	allow := strings.Join(append(append([]string{}, methods...), fiber.MethodOptions), ", ")

	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		c.Set(fiber.HeaderAccessControlAllowCredentials, "true")
		c.Set(fiber.HeaderAccessControlAllowMethods, allow)
		c.Set(fiber.HeaderAccessControlAllowHeaders, fiber.HeaderContentType)

		if c.Method() == fiber.MethodOptions {
			c.Status(fiber.StatusOK)
			return nil
		}
		return c.Next()
	}
}
