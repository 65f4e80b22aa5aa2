package handlers

import (
	"atelier/internal/apperr"
	applog "atelier/internal/log"
	"atelier/internal/services"
	"atelier/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ClientHandler struct {
	Clients     *services.ClientService
	PageSizeMax int
}

type clientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	CPF   string `json:"cpf"`
}

func (h *ClientHandler) List(c *fiber.Ctx) error {
	pg, size := validate.Page(c.Query("page"), c.Query("page_size"), h.PageSizeMax)
	items, total, err := h.Clients.List(pg, size)
	if err != nil {
		return fail(c, err)
	}
	return respondPage(c, items, total, pg, size)
}

func (h *ClientHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, apperr.NotFoundf("client not found"))
	}
	client, err := h.Clients.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(client)
}

func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var req clientRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperr.Validationf("invalid request body"))
	}
	fields := map[string]string{}
	name, ok := validate.Name(req.Name)
	if !ok {
		fields["name"] = "required"
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		fields["email"] = "must be a valid email"
	}
	cpf, ok := validate.CPF(req.CPF)
	if !ok {
		fields["cpf"] = "must be 11 digits"
	}
	if len(fields) > 0 {
		return fail(c, apperr.ValidationFields("invalid client", fields))
	}

	client, err := h.Clients.Create(name, email, cpf, CurrentClaims(c).UserID())
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "client.create", map[string]any{"client_id": client.ID})
	return c.Status(fiber.StatusCreated).JSON(client)
}

func (h *ClientHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, apperr.NotFoundf("client not found"))
	}
	var patch services.ClientPatch
	if err := c.BodyParser(&patch); err != nil {
		return fail(c, apperr.Validationf("invalid request body"))
	}
	fields := map[string]string{}
	if patch.Name != nil {
		name, ok := validate.Name(*patch.Name)
		if !ok {
			fields["name"] = "must not be empty"
		} else {
			patch.Name = &name
		}
	}
	if patch.Email != nil {
		email, ok := validate.Email(*patch.Email)
		if !ok {
			fields["email"] = "must be a valid email"
		} else {
			patch.Email = &email
		}
	}
	if patch.CPF != nil {
		cpf, ok := validate.CPF(*patch.CPF)
		if !ok {
			fields["cpf"] = "must be 11 digits"
		} else {
			patch.CPF = &cpf
		}
	}
	if len(fields) > 0 {
		return fail(c, apperr.ValidationFields("invalid client", fields))
	}

	client, err := h.Clients.Update(id, patch)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "client.update", map[string]any{"client_id": id})
	return c.JSON(client)
}

func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, apperr.NotFoundf("client not found"))
	}
	if err := h.Clients.Delete(id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "client.delete", map[string]any{"client_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
