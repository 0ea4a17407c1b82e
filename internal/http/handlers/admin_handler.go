package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "bytebazaar/internal/log"
	"bytebazaar/internal/repos"
	"bytebazaar/internal/services"
	"bytebazaar/internal/validate"
)

type AdminHandler struct {
	Order    *services.OrderService
	Orders   *repos.OrderRepo
	Stock    *repos.StockRepo
	Payments *repos.PaymentRepo
}

// GET /api/v1/admin/orders
func (h *AdminHandler) OrdersList(c *fiber.Ctx) error {
	ords, err := h.Orders.ListLatest(100)
	if err != nil {
		return respondError(c, "admin.orders.list", err)
	}
	return c.JSON(fiber.Map{"orders": ords})
}

// POST /api/v1/admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing id"})
	}
	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := bindAndValidate(c, &req); err != nil {
		return nil
	}

	if err := h.Order.Transition(id, req.Status); err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id, "status": req.Status})
		return respondError(c, "admin.orders.update", err)
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": req.Status})
	return c.JSON(fiber.Map{"success": true})
}

// GET /api/v1/admin/orders/:id/payment
func (h *AdminHandler) OrderPayment(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}
	p, err := h.Payments.Current(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
		}
		return respondError(c, "admin.payment.get", err)
	}
	return c.JSON(p)
}

// GET /api/v1/admin/inventory
func (h *AdminHandler) Inventory(c *fiber.Ctx) error {
	rows, err := h.Stock.ListAll()
	if err != nil {
		return respondError(c, "admin.inventory.list", err)
	}
	return c.JSON(fiber.Map{"inventory": rows})
}

// POST /api/v1/admin/inventory
func (h *AdminHandler) UpdateInventory(c *fiber.Ctx) error {
	var req struct {
		ProductID string `json:"product_id" validate:"required"`
		Stock     int    `json:"stock" validate:"min=0"`
	}
	if err := bindAndValidate(c, &req); err != nil {
		return nil
	}
	if _, okID := validate.ID(req.ProductID); !okID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}
	if err := h.Stock.UpsertStock(req.ProductID, req.Stock); err != nil {
		applog.Error(c, "admin.inventory.save.fail", err, map[string]any{"product": req.ProductID, "stock": req.Stock})
		return respondError(c, "admin.inventory.save", err)
	}
	applog.Audit(c, "admin.inventory.save", map[string]any{"product": req.ProductID, "stock": req.Stock})
	return c.JSON(fiber.Map{"success": true})
}
