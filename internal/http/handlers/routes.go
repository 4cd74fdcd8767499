package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"inventory/internal/config"
	applog "inventory/internal/log"
)

// Routes mounts the API on app. The trailing :id is optional on every book and
// customer verb; handlers decide whether they need it.
func Routes(app *fiber.App, deps *Deps, cfg config.Config) {
	api := app.Group("/api")

	api.Get("/books/:id?", deps.BookHandler.List)
	api.Post("/books/:id?", deps.BookHandler.Add)
	api.Put("/books/:id?", deps.BookHandler.Update)
	api.Delete("/books/:id?", deps.BookHandler.Delete)

	api.Get("/customers/:id?", deps.CustomerHandler.List)
	api.Post("/customers/:id?", deps.CustomerHandler.Add)
	api.Put("/customers/:id?", deps.CustomerHandler.Update)
	api.Delete("/customers/:id?", deps.CustomerHandler.Delete)

	api.Post("/register", deps.AuthHandler.Register)
	if cfg.LoginRateLimit > 0 {
		api.Post("/login", limiter.New(limiter.Config{
			Max:        cfg.LoginRateLimit,
			Expiration: 10 * time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.login.hit", nil)
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many login attempts, retry later"})
			},
		}), deps.AuthHandler.Login)
	} else {
		api.Post("/login", deps.AuthHandler.Login)
	}

	// Health
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := deps.DB.Ping(); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"ok": true})
	})
}
