package handlers

import (
	"log"
	"strconv"

	"warung/internal/models"
	"warung/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/product", h.HandleCommand)
	router.Get("/product", h.HandleMissingID)
	router.Get("/product/:id", h.HandleGet)
}

// HandleMissingID rejects retrieval without an id in the path.
func (h *ProductHandler) HandleMissingID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing product id"})
}

// HandleCommand decodes a command envelope and hands it to the service.
func (h *ProductHandler) HandleCommand(c *fiber.Ctx) error {
	var cmd models.ProductCommand
	if err := c.BodyParser(&cmd); err != nil {
		log.Printf("Error parsing product command body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	product, err := h.service.Execute(cmd)
	if err != nil {
		return respondError(c, err)
	}
	if product == nil {
		// Delete is the only command without a record to echo.
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "deleted"})
	}
	return c.Status(fiber.StatusOK).JSON(product)
}

// HandleGet retrieves a product by the id embedded in the path.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(product)
}
