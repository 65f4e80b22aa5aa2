package handlers

import (
	"atelier/internal/apperr"
	applog "atelier/internal/log"
	"atelier/internal/services"
	"atelier/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Orders      *services.OrderService
	PageSizeMax int
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	pg, size := validate.Page(c.Query("page"), c.Query("page_size"), h.PageSizeMax)
	items, total, err := h.Orders.List(pg, size)
	if err != nil {
		return fail(c, err)
	}
	return respondPage(c, items, total, pg, size)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, apperr.NotFoundf("order not found"))
	}
	o, err := h.Orders.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(o)
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in services.OrderInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, apperr.Validationf("invalid request body"))
	}
	o, err := h.Orders.Create(in, CurrentClaims(c).UserID())
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "order.create", map[string]any{"order_id": o.ID, "items": len(o.Items)})
	return c.Status(fiber.StatusCreated).JSON(o)
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, apperr.NotFoundf("order not found"))
	}
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperr.Validationf("invalid request body"))
	}
	o, err := h.Orders.UpdateStatus(id, req.Status)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "order.status", map[string]any{"order_id": id, "status": req.Status})
	return c.JSON(o)
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, apperr.NotFoundf("order not found"))
	}
	if err := h.Orders.Delete(id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "order.delete", map[string]any{"order_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
