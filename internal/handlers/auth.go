package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/freelahub/api/internal/auth"
	"github.com/freelahub/api/internal/models"
	"github.com/freelahub/api/internal/services"
)

type AuthHandler struct {
	Users     *services.UserService
	JWTSecret string
	Expires   int
}

func NewAuthHandler(users *services.UserService, secret string, expires int) *AuthHandler {
	return &AuthHandler{Users: users, JWTSecret: secret, Expires: expires}
}

type RegisterReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // company / freelancer
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	u, err := h.Users.Register(services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		return domainErr(c, err)
	}

	token, err := auth.SignJWT(h.JWTSecret, u.ID, string(u.Role), h.Expires)
	if err != nil {
		return domainErr(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"token": token,
			"user":  u,
		},
	})
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	u, err := h.Users.Authenticate(req.Email, req.Password)
	if err != nil {
		return domainErr(c, err)
	}

	token, err := auth.SignJWT(h.JWTSecret, u.ID, string(u.Role), h.Expires)
	if err != nil {
		return domainErr(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"token": token,
			"user":  u,
		},
	})
}

// Me returns the caller's own account.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}
	u, err := h.Users.GetByID(p.UserID)
	if err != nil {
		return domainErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": u})
}
