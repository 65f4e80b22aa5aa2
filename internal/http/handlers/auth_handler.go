package handlers

import (
	"atelier/internal/apperr"
	applog "atelier/internal/log"
	"atelier/internal/services"
	"atelier/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
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
	if !validate.Password(req.Password) {
		fields["password"] = "must be 8-72 chars with upper, lower and digit"
	}
	if len(fields) > 0 {
		return fail(c, apperr.ValidationFields("invalid registration", fields))
	}

	u, err := h.Auth.Register(name, email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "auth.register", map[string]any{"email": email})
	return c.Status(fiber.StatusCreated).JSON(u)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperr.Validationf("invalid request body"))
	}
	email, ok := validate.Email(req.Email)
	if !ok || req.Password == "" {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return fail(c, apperr.Unauthenticatedf("invalid email or password"))
	}

	pair, err := h.Auth.Login(email, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return fail(c, err)
	}
	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.JSON(pair)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperr.Validationf("invalid request body"))
	}
	pair, err := h.Auth.Refresh(req.RefreshToken)
	if err != nil {
		applog.Security(c, "auth.refresh.fail", nil)
		return fail(c, err)
	}
	return c.JSON(pair)
}
