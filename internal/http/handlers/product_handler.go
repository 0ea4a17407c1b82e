package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "bytebazaar/internal/log"
	"bytebazaar/internal/services"
	"bytebazaar/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Stock   *services.StockService
}

// GET /api/v1/products
// Cached; degrades instead of failing.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"products": h.Catalog.ListProducts()})
}

// GET /api/v1/products/category/:category
func (h *ProductHandler) ListByCategory(c *fiber.Ctx) error {
	category, ok := validate.ID(c.Params("category"))
	if !ok {
		return c.JSON(fiber.Map{"products": []any{}})
	}
	return c.JSON(fiber.Map{"products": h.Catalog.ListProductsByCategory(category)})
}

// GET /api/v1/products/:id
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil || !p.Active {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}
	return c.JSON(p)
}

// GET /api/v1/availability?productId=&qty=
func (h *ProductHandler) Availability(c *fiber.Ctx) error {
	productID := strings.TrimSpace(c.Query("productId"))
	if _, ok := validate.ID(productID); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	qty := validate.Qty(c.Query("qty", "1"))

	avail, err := h.Stock.CheckAvailable(productID, qty)
	if err != nil {
		return respondError(c, "availability.check", err)
	}
	return c.JSON(avail)
}
