package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/freelahub/api/internal/auth"
)

// JWTFromHeader verifies the Authorization: Bearer token and stashes the
// parsed claims for the rest of the chain.
func JWTFromHeader(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return fiber.ErrUnauthorized
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims, err := auth.ParseJWT(secret, tokenStr)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}
