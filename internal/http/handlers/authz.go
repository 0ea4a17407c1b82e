package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "bytebazaar/internal/log"
	"bytebazaar/internal/services"
)

// RequireAdmin guards the admin API: the sid cookie must map to an ADMIN
// session, otherwise 401 without touching the handler.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil || u.Role != "ADMIN" {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}
