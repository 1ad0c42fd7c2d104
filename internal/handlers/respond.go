package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/freelahub/api/internal/auth"
	"github.com/freelahub/api/internal/domain"
	"github.com/freelahub/api/internal/models"
)

func principalFromCtx(c *fiber.Ctx) (auth.Principal, error) {
	uid, ok := c.Locals("userId").(uint)
	role, ok2 := c.Locals("role").(string)
	if !ok || !ok2 || uid == 0 {
		return auth.Principal{}, fiber.ErrUnauthorized
	}
	return auth.Principal{UserID: uid, Role: models.Role(role)}, nil
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// domainErr maps the business-error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is logged server-side and answered generically.
func domainErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return fail(c, fiber.StatusConflict, err.Error())
	}
	log.Printf("unexpected error on %s %s: %v", c.Method(), c.Path(), err)
	return fail(c, fiber.StatusInternalServerError, "internal server error")
}
