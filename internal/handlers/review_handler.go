package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/freelahub/api/internal/services"
)

type ReviewHandler struct {
	Reviews *services.ReviewService
}

func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews}
}

type ReviewReq struct {
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	RevieweeID uint   `json:"reviewee_id"`
	ProjectID  uint   `json:"project_id"`
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}

	var req ReviewReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	review, err := h.Reviews.Create(p, services.CreateReviewInput{
		Rating:     req.Rating,
		Comment:    req.Comment,
		RevieweeID: req.RevieweeID,
		ProjectID:  req.ProjectID,
	})
	if err != nil {
		return domainErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": review})
}

func (h *ReviewHandler) ListByReviewee(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}
	revieweeID, err := paramID(c, "userId")
	if err != nil {
		return err
	}
	reviews, err := h.Reviews.ListByReviewee(p, revieweeID)
	if err != nil {
		return domainErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": reviews})
}

func (h *ReviewHandler) ListByReviewer(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}
	reviewerID, err := paramID(c, "userId")
	if err != nil {
		return err
	}
	reviews, err := h.Reviews.ListByReviewer(p, reviewerID)
	if err != nil {
		return domainErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": reviews})
}

func (h *ReviewHandler) Get(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	review, err := h.Reviews.Get(p, id)
	if err != nil {
		return domainErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": review})
}

type ReviewUpdateReq struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req ReviewUpdateReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	review, err := h.Reviews.Update(p, id, services.UpdateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return domainErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": review})
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Reviews.Delete(p, id); err != nil {
		return domainErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
