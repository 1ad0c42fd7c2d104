package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequireRoles rejects callers whose token role is not in the allowed set.
// Fine-grained ownership checks still happen in the services; this is only
// the coarse per-route filter.
func RequireRoles(allowed ...string) fiber.Handler {
	allowedSet := map[string]bool{}
	for _, r := range allowed {
		allowedSet[strings.ToLower(r)] = true
	}

	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || role == "" {
			return fiber.ErrUnauthorized
		}
		if !allowedSet[role] {
			return fiber.NewError(fiber.StatusForbidden, "forbidden: insufficient role")
		}
		return c.Next()
	}
}
