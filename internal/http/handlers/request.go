package handlers

import (
	"errors"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	applog "inventory/internal/log"
	"inventory/internal/validate"
)

var errBadBody = errors.New("invalid request body")

// pathID resolves the optional trailing :id segment. Absent or non-numeric
// segments report ok=false.
func pathID(c *fiber.Ctx) (int64, bool) {
	raw := c.Params("id")
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// decode parses the body as JSON regardless of Content-Type. Empty or malformed
// bodies fail.
func decode(c *fiber.Ctx, v any) error {
	body := c.Body()
	if len(body) == 0 {
		return errBadBody
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errBadBody
	}
	return nil
}

func badBody(c *fiber.Ctx) error {
	applog.Security(c, "validation.fail", map[string]any{"reason": "body"})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errBadBody.Error()})
}

// invalid answers 400 with msg and the offending fields.
func invalid(c *fiber.Ctx, msg string, err error) error {
	var ve validate.Errors
	errors.As(err, &ve)
	applog.Security(c, "validation.fail", map[string]any{"fields": ve})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg, "fields": ve})
}

func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

func failure(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
