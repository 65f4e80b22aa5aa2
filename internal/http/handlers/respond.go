package handlers

import (
	"errors"

	"atelier/internal/apperr"
	applog "atelier/internal/log"

	"github.com/gofiber/fiber/v2"
)

// page is the uniform list-endpoint envelope.
type page[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

func respondPage[T any](c *fiber.Ctx, items []T, total, pg, size int) error {
	return c.JSON(page[T]{Items: items, Total: total, Page: pg, PageSize: size})
}

// fail translates a service error into the JSON error body. Errors
// outside the taxonomy are logged and surfaced as a generic 500.
func fail(c *fiber.Ctx, err error) error {
	status := apperr.Status(err)
	if status == 500 {
		applog.Error(c, "server.error", err, nil)
		return c.Status(500).JSON(fiber.Map{"error": "internal server error"})
	}
	body := fiber.Map{"error": err.Error()}
	var ae *apperr.Error
	if errors.As(err, &ae) && len(ae.Details) > 0 {
		body["details"] = ae.Details
	}
	return c.Status(status).JSON(body)
}
