package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/DrNour/Nour-translation-app/internal/utils"
)

// RequireRole ensures the authenticated user possesses one of the allowed
// roles before reaching the handler.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		normalized := strings.ToLower(strings.TrimSpace(role))
		if normalized != "" {
			allowed[normalized] = struct{}{}
		}
	}

	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		if _, ok := allowed[strings.ToLower(strings.TrimSpace(role))]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

// UserIDFromContext extracts the authenticated account id bound by the JWT
// middleware.
func UserIDFromContext(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("user_id").(uint)
	return id, ok
}

// UserRoleFromContext extracts the authenticated role bound by the JWT
// middleware.
func UserRoleFromContext(c *fiber.Ctx) (string, bool) {
	role, ok := c.Locals("user_role").(string)
	return role, ok && role != ""
}
