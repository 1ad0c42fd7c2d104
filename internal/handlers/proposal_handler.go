package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/freelahub/api/internal/models"
	"github.com/freelahub/api/internal/realtime"
	"github.com/freelahub/api/internal/services"
)

type ProposalHandler struct {
	Proposals *services.ProposalService
	Notifier  *realtime.Notifier
}

func NewProposalHandler(proposals *services.ProposalService, notifier *realtime.Notifier) *ProposalHandler {
	return &ProposalHandler{Proposals: proposals, Notifier: notifier}
}

type ProposalReq struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	ProjectID   uint   `json:"project_id"`
}

func (h *ProposalHandler) Create(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}

	var req ProposalReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	proposal, err := h.Proposals.Create(p, services.CreateProposalInput{
		Amount:      req.Amount,
		Description: req.Description,
		ProjectID:   req.ProjectID,
	})
	if err != nil {
		return domainErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": proposal})
}

func (h *ProposalHandler) ListByProject(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}
	projectID, err := paramID(c, "projectId")
	if err != nil {
		return err
	}
	proposals, err := h.Proposals.ListByProject(p, projectID)
	if err != nil {
		return domainErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": proposals})
}

func (h *ProposalHandler) ListByFreelancer(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}
	freelancerID, err := paramID(c, "freelancerId")
	if err != nil {
		return err
	}
	proposals, err := h.Proposals.ListByFreelancer(p, freelancerID)
	if err != nil {
		return domainErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": proposals})
}

func (h *ProposalHandler) Get(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	proposal, err := h.Proposals.Get(p, id)
	if err != nil {
		return domainErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": proposal})
}

type ProposalStatusReq struct {
	Status string `json:"status"`
}

func (h *ProposalHandler) UpdateStatus(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req ProposalStatusReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	proposal, err := h.Proposals.UpdateStatus(p, id, models.ProposalStatus(req.Status))
	if err != nil {
		return domainErr(c, err)
	}

	h.Notifier.Notify(proposal.FreelancerID, map[string]interface{}{
		"type":        "proposal_decided",
		"proposal_id": proposal.ID,
		"project_id":  proposal.ProjectID,
		"status":      req.Status,
	})

	return c.JSON(fiber.Map{"success": true, "data": proposal})
}

func (h *ProposalHandler) Delete(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Proposals.Delete(p, id); err != nil {
		return domainErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
