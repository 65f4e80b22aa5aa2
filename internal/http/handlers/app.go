package handlers

import (
	"time"

	"atelier/internal/config"
	applog "atelier/internal/log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"
)

// NewApp assembles the fiber application: middlewares, auth gate and
// every route. Used by main and by the HTTP tests.
func NewApp(db *sqlx.DB, cfg config.Config) *fiber.App {
	deps := NewDeps(db, cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok && fe.Code < 500 {
				return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
			}
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New())

	// ---------- Public ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Welcome to the Atelier API."})
	})
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	// ---------- Auth (login throttled) ----------
	auth := app.Group("/auth")
	auth.Post("/register", deps.AuthHandler.Register)
	auth.Post("/login", limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, retry soon"})
		},
	}), deps.AuthHandler.Login)
	auth.Post("/refresh", deps.AuthHandler.Refresh)

	// ---------- Gated resources ----------
	gate := []fiber.Handler{RequireAuth(deps.Auth), AdminForWrites()}

	clients := app.Group("/clients", gate...)
	clients.Get("/", deps.ClientHandler.List)
	clients.Post("/", deps.ClientHandler.Create)
	clients.Get("/:id", deps.ClientHandler.Get)
	clients.Put("/:id", deps.ClientHandler.Update)
	clients.Delete("/:id", deps.ClientHandler.Delete)

	products := app.Group("/products", gate...)
	products.Get("/", deps.ProductHandler.List)
	products.Post("/", deps.ProductHandler.Create)
	// image routes before /:id so "images" never parses as a product id
	products.Delete("/images/:id", deps.ProductHandler.DeleteImage)
	products.Get("/:id/images", deps.ProductHandler.ListImages)
	products.Post("/:id/images", deps.ProductHandler.AddImages)
	products.Get("/:id", deps.ProductHandler.Get)
	products.Put("/:id", deps.ProductHandler.Update)
	products.Delete("/:id", deps.ProductHandler.Delete)

	orders := app.Group("/orders", gate...)
	orders.Get("/", deps.OrderHandler.List)
	orders.Post("/", deps.OrderHandler.Create)
	orders.Get("/:id", deps.OrderHandler.Get)
	orders.Put("/:id", deps.OrderHandler.UpdateStatus)
	orders.Delete("/:id", deps.OrderHandler.Delete)

	// 404 fallthrough
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	return app
}
