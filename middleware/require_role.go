package middleware

import (
	"github.com/gofiber/fiber/v2"

	"feedloop/models"
)

// RequireRole gates a route to callers holding the given role. It must
// run after Protected. Authenticated callers with the wrong role get 403.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*models.User)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization required",
			})
		}

		if user.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Only " + role + "s can perform this action",
			})
		}

		return c.Next()
	}
}
