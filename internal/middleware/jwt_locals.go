package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/freelahub/api/internal/auth"
)

// AttachJWTLocals turns the verified claims into userId/role locals that
// handlers read when building the caller principal.
func AttachJWTLocals() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Locals("claims")
		if raw == nil {
			return fiber.ErrUnauthorized
		}

		claims, ok := raw.(*auth.Claims)
		if !ok || claims == nil {
			return fiber.ErrUnauthorized
		}

		role := strings.ToLower(strings.TrimSpace(claims.Role))
		if claims.UserID == 0 || role == "" {
			return fiber.ErrUnauthorized
		}

		c.Locals("userId", claims.UserID)
		c.Locals("role", role)

		return c.Next()
	}
}
