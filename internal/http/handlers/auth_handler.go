package handlers

import (
	"errors"
	"strings"

	"inventory/internal/log"
	"inventory/internal/services"
	"inventory/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// credentials takes any JSON value so a wrongly typed field is a failed login
// rather than a malformed body.
type credentials struct {
	Email    any `json:"email"`
	Password any `json:"password"`
}

func text(v any) string {
	s, _ := v.(string)
	return s
}

// POST /api/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in validate.RegisterInput
	if err := decode(c, &in); err != nil {
		return badBody(c)
	}
	err := h.Auth.Register(in)
	var ve validate.Errors
	switch {
	case errors.As(err, &ve):
		return invalid(c, "Missing required fields", err)
	case errors.Is(err, services.ErrEmailTaken):
		log.Security(c, "auth.register.fail", map[string]any{"email": in.Email, "reason": "duplicate"})
		return failure(c, fiber.StatusBadRequest, "User registration failed")
	case err != nil:
		return err
	}
	log.Audit(c, "auth.register.success", map[string]any{"email": in.Email})
	return message(c, fiber.StatusCreated, "User registered successfully")
}

// POST /api/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in credentials
	if err := decode(c, &in); err != nil {
		return badBody(c)
	}
	email := strings.TrimSpace(text(in.Email))
	u, err := h.Auth.Login(email, text(in.Password))
	if errors.Is(err, services.ErrBadCreds) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return failure(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if err != nil {
		return err
	}
	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.JSON(u)
}
