package handlers

import (
	"errors"
	"io"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"inventory/internal/config"
	applog "inventory/internal/log"
)

// NewApp builds the fiber app with the shared middleware stack. Routes are added
// separately by Routes. accessLog, when non-nil, receives one access line per request.
func NewApp(cfg config.Config, accessLog io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "inventory",
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          ErrorHandler(cfg.RedactErrors),
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if accessLog != nil {
		app.Use(logger.New(logger.Config{Output: accessLog}))
	}
	app.Use(fiberrecover.New())
	app.Use(CORS())
	app.Use(helmet.New(helmet.Config{
		// browser clients on other origins must be able to read responses
		CrossOriginResourcePolicy: "cross-origin",
	}))
	return app
}

// CORS adds permissive cross-origin headers to every response and answers any
// OPTIONS request with 204 before routing.
func CORS() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		c.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, PUT, DELETE, OPTIONS")
		c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type")
		if c.Method() == fiber.MethodOptions {
			c.Status(fiber.StatusNoContent)
			return nil
		}
		return c.Next()
	}
}

// ErrorHandler is the catch-all for errors handlers don't answer themselves.
// Routing misses become JSON 404/405; anything else is logged and reported as
// 500 carrying the error text unless redact is set.
func ErrorHandler(redact bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
			switch fe.Code {
			case fiber.StatusMethodNotAllowed:
				return c.Status(fe.Code).JSON(fiber.Map{"error": "Unsupported method"})
			case fiber.StatusNotFound:
				return c.Status(fe.Code).JSON(fiber.Map{"error": "Not found"})
			}
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		applog.Error(c, "server.error", err, nil)
		msg := err.Error()
		if redact {
			msg = "internal server error"
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msg})
	}
}
