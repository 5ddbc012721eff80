package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func ok(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(dto.Envelope{Status: true, Message: message, Data: data})
}

func reject(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(dto.Envelope{Status: false, Message: message, Data: data})
}

func invalid(c *fiber.Ctx, fields map[string]string) error {
	return reject(c, fiber.StatusBadRequest, "Validation failed", fields)
}

func badBody(c *fiber.Ctx) error {
	return reject(c, fiber.StatusBadRequest, "Invalid request body", nil)
}

// fail maps a service error to its status code. Anything that is not a
// typed service error is logged and hidden behind a 500.
func fail(c *fiber.Ctx, err error) error {
	var se *services.Error
	if errors.As(err, &se) {
		var data interface{}
		if len(se.Fields) > 0 {
			data = se.Fields
		}
		return reject(c, statusFor(err), se.Message, data)
	}

	slog.Error("request failed",
		"request_id", requestID(c),
		"method", c.Method(),
		"path", c.Path(),
		"error", err,
	)
	return reject(c, fiber.StatusInternalServerError, "Internal server error", nil)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.Get(fiber.HeaderXRequestID)
}

// paramID parses the :id route param.
func paramID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}
