package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"github.com/freelahub/api/internal/models"
	"github.com/freelahub/api/internal/services"
)

type ProjectHandler struct {
	Projects *services.ProjectService
}

func NewProjectHandler(projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{Projects: projects}
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

type ProjectReq struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Skills      datatypes.JSON `json:"skills"`
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}

	var req ProjectReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	project, err := h.Projects.Create(p, services.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Skills:      req.Skills,
	})
	if err != nil {
		return domainErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": project})
}

// List is public.
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	projects, err := h.Projects.List()
	if err != nil {
		return domainErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": projects})
}

// Get is public.
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	project, err := h.Projects.Get(id)
	if err != nil {
		return domainErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": project})
}

func (h *ProjectHandler) ListMine(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}
	projects, err := h.Projects.ListMine(p)
	if err != nil {
		return domainErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": projects})
}

type ProjectUpdateReq struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Status      *string        `json:"status"`
	Skills      datatypes.JSON `json:"skills"`
}

func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req ProjectUpdateReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	in := services.UpdateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Skills:      req.Skills,
	}
	if req.Status != nil {
		st := models.ProjectStatus(*req.Status)
		in.Status = &st
	}

	project, err := h.Projects.Update(p, id, in)
	if err != nil {
		return domainErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": project})
}

func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Projects.Delete(p, id); err != nil {
		return domainErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
