package handlers

import (
	"log"
	"strconv"

	"warung/internal/models"
	"warung/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for the user account store.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/user", h.HandleCommand)
	router.Get("/user", h.HandleMissingID)
	router.Get("/user/:id", h.HandleGet)
}

// HandleMissingID rejects retrieval without an id in the path.
func (h *UserHandler) HandleMissingID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing user id"})
}

// HandleCommand decodes a command envelope and hands it to the service.
// The response never carries the password in any form: the model serializes
// the digest as json:"-" and the plaintext dies inside the service.
func (h *UserHandler) HandleCommand(c *fiber.Ctx) error {
	var cmd models.UserCommand
	if err := c.BodyParser(&cmd); err != nil {
		log.Printf("Error parsing user command body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	user, err := h.service.Execute(cmd)
	if err != nil {
		return respondError(c, err)
	}
	if user == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "deleted"})
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// HandleGet retrieves a user by the id embedded in the path.
func (h *UserHandler) HandleGet(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	user, err := h.service.GetUserByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(user)
}
