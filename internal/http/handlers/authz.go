package handlers

import (
	"strings"

	"atelier/internal/apperr"
	applog "atelier/internal/log"
	"atelier/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the Bearer access token and stores its claims
// in request locals. Missing or bad tokens stop the chain with 401.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return fail(c, apperr.Unauthenticatedf("authorization header is missing"))
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			return fail(c, apperr.Unauthenticatedf("bearer token not found"))
		}
		claims, err := auth.ParseAccess(token)
		if err != nil {
			applog.Security(c, "auth.token.invalid", nil)
			return fail(c, err)
		}
		c.Locals("claims", claims)
		c.Locals("user_id", claims.UserID())
		return c.Next()
	}
}

// AdminForWrites is the single authorization rule of the API: reads are
// open to any authenticated user, every other verb needs an admin.
func AdminForWrites() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodGet {
			return c.Next()
		}
		claims := CurrentClaims(c)
		if claims == nil || !claims.Admin {
			applog.Security(c, "access.denied.admin", map[string]any{"method": c.Method()})
			return fail(c, apperr.Forbiddenf("admins only"))
		}
		return c.Next()
	}
}

// CurrentClaims returns the token claims placed by RequireAuth, or nil.
func CurrentClaims(c *fiber.Ctx) *services.Claims {
	claims, _ := c.Locals("claims").(*services.Claims)
	return claims
}
