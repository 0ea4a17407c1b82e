package handlers

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"bytebazaar/internal/domain"
	applog "bytebazaar/internal/log"
	"bytebazaar/internal/services"
	"bytebazaar/internal/validate"
)

type OrderHandler struct {
	Order    *services.OrderService
	Catalog  *services.CatalogService
	FilesDir string
}

type checkoutItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Name      string `json:"name"`
}

type checkoutRequest struct {
	CustomerName  string                `json:"customer_name" validate:"required,max=60"`
	CustomerEmail string                `json:"customer_email" validate:"required,email,max=80"`
	CustomerPhone string                `json:"customer_phone" validate:"omitempty,max=20"`
	Items         []checkoutItemRequest `json:"items" validate:"required,min=1,dive"`
	Total         decimal.Decimal       `json:"total"`
	PaymentMethod string                `json:"payment_method" validate:"required"`
	RedeemCode    string                `json:"redeem_code"`
}

// POST /api/v1/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return nil
	}
	phone, ok := validate.Phone(req.CustomerPhone)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "phone"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_phone"})
	}
	req.CustomerPhone = phone

	items := make([]services.CheckoutItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, services.CheckoutItem{ProductID: it.ProductID, Quantity: it.Quantity, Name: it.Name})
	}
	contact := services.Contact{Name: req.CustomerName, Email: req.CustomerEmail, Phone: req.CustomerPhone}

	orderID, err := h.Order.Create(items, req.Total, contact, req.PaymentMethod, req.RedeemCode)
	if err != nil {
		applog.Security(c, "order.create.fail", map[string]any{"error": err.Error()})
		return respondError(c, "order.create", err)
	}

	applog.Audit(c, "order.create", map[string]any{
		"order_id": orderID,
		"items":    len(items),
		"total":    req.Total.String(),
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"order_id": orderID})
}

// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}
	o, items, err := h.Order.Get(id)
	if err != nil {
		return respondError(c, "order.get", err)
	}
	return c.JSON(fiber.Map{"order": o, "items": items})
}

// GET /api/v1/orders/:id/download/:productID
// Serves the purchased file once the order is fulfilled. The order id is
// the read capability; the path is traversal-guarded before hitting disk.
func (h *OrderHandler) Download(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}
	productID, ok := validate.ID(c.Params("productID"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}

	o, items, err := h.Order.Get(id)
	if err != nil {
		return respondError(c, "order.download", err)
	}
	if !domain.Fulfilled(o.Status) {
		applog.Security(c, "download.unfulfilled", map[string]any{"order_id": id, "status": o.Status})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}
	owned := false
	for _, it := range items {
		if it.ProductID == productID {
			owned = true
			break
		}
	}
	if !owned {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}

	p, err := h.Catalog.GetProduct(productID)
	if err != nil || p.FileKey == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}

	// Block raw or encoded traversal in the stored key before serving.
	rawLower := strings.ToLower(p.FileKey)
	if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
		applog.Security(c, "download.traversal.block", map[string]any{"key": p.FileKey})
		return c.SendStatus(fiber.StatusNotFound)
	}
	clean := filepath.Clean(p.FileKey)
	if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		applog.Security(c, "download.traversal.block", map[string]any{"key": p.FileKey})
		return c.SendStatus(fiber.StatusNotFound)
	}

	applog.Audit(c, "order.download", map[string]any{"order_id": id, "product_id": productID})
	return c.SendFile(filepath.Join(h.FilesDir, clean), true)
}
