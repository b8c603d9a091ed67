package handlers

import (
	"errors"
	"log"

	"warung/internal/services"
	"warung/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// respondError maps an engine outcome to the protocol's status codes.
// Unclassified errors are logged server-side and returned as an opaque 500.
func respondError(c *fiber.Ctx, err error) error {
	var fail *validation.Failure
	switch {
	case errors.As(err, &fail):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fail.Error()})
	case errors.Is(err, services.ErrInvalidCommand):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrConfirmationMismatch):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("Internal error handling %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
