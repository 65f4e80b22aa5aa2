package handlers

import (
	"atelier/internal/apperr"
	applog "atelier/internal/log"
	"atelier/internal/services"
	"atelier/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Products    *services.ProductService
	PageSizeMax int
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	pg, size := validate.Page(c.Query("page"), c.Query("page_size"), h.PageSizeMax)
	items, total, err := h.Products.List(pg, size)
	if err != nil {
		return fail(c, err)
	}
	return respondPage(c, items, total, pg, size)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, apperr.NotFoundf("product not found"))
	}
	p, err := h.Products.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(p)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, apperr.Validationf("invalid request body"))
	}
	p, err := h.Products.Create(in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.create", map[string]any{"product_id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, apperr.NotFoundf("product not found"))
	}
	var patch services.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return fail(c, apperr.Validationf("invalid request body"))
	}
	p, err := h.Products.Update(id, patch)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.update", map[string]any{"product_id": id})
	return c.JSON(p)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, apperr.NotFoundf("product not found"))
	}
	if err := h.Products.Delete(id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.delete", map[string]any{"product_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// ---------- Images ----------

type imageRequest struct {
	URL string `json:"url"`
}

func (h *ProductHandler) AddImages(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, apperr.NotFoundf("product not found"))
	}
	var reqs []imageRequest
	if err := c.BodyParser(&reqs); err != nil {
		return fail(c, apperr.Validationf("invalid request body; expected a JSON list of {\"url\": ...}"))
	}
	if len(reqs) == 0 {
		return fail(c, apperr.Validationf("at least one image url is required"))
	}
	urls := make([]string, 0, len(reqs))
	for _, r := range reqs {
		u, ok := validate.URL(r.URL)
		if !ok {
			return fail(c, apperr.Validationf("invalid image url %q", r.URL))
		}
		urls = append(urls, u)
	}

	images, err := h.Products.AddImages(id, urls)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.images.add", map[string]any{"product_id": id, "count": len(images)})
	return c.Status(fiber.StatusCreated).JSON(images)
}

func (h *ProductHandler) ListImages(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, apperr.NotFoundf("product not found"))
	}
	images, err := h.Products.ListImages(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(images)
}

func (h *ProductHandler) DeleteImage(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, apperr.NotFoundf("image not found"))
	}
	if err := h.Products.DeleteImage(id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.images.delete", map[string]any{"image_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
