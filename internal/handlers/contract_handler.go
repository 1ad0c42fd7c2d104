package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/freelahub/api/internal/models"
	"github.com/freelahub/api/internal/realtime"
	"github.com/freelahub/api/internal/services"
)

type ContractHandler struct {
	Contracts *services.ContractService
	Notifier  *realtime.Notifier
}

func NewContractHandler(contracts *services.ContractService, notifier *realtime.Notifier) *ContractHandler {
	return &ContractHandler{Contracts: contracts, Notifier: notifier}
}

type ContractReq struct {
	ProjectID uint   `json:"project_id"`
	Terms     string `json:"terms"`
}

func (h *ContractHandler) Create(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}

	var req ContractReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	contract, err := h.Contracts.Create(p, services.CreateContractInput{
		ProjectID: req.ProjectID,
		Terms:     req.Terms,
	})
	if err != nil {
		return domainErr(c, err)
	}

	h.Notifier.Notify(contract.FreelancerID, map[string]interface{}{
		"type":        "contract_created",
		"contract_id": contract.ID,
		"project_id":  contract.ProjectID,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": contract})
}

func (h *ContractHandler) Get(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	contract, err := h.Contracts.Get(p, id)
	if err != nil {
		return domainErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": contract})
}

func (h *ContractHandler) ListMine(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}
	contracts, err := h.Contracts.ListByUser(p)
	if err != nil {
		return domainErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": contracts})
}

type ContractStatusReq struct {
	Status string `json:"status"`
}

func (h *ContractHandler) UpdateStatus(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req ContractStatusReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	contract, err := h.Contracts.UpdateStatus(p, id, models.ContractStatus(req.Status))
	if err != nil {
		return domainErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": contract})
}

func (h *ContractHandler) Delete(c *fiber.Ctx) error {
	p, err := principalFromCtx(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Contracts.Delete(p, id); err != nil {
		return domainErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
