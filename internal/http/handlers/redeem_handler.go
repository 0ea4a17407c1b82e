package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bytebazaar/internal/services"
	"bytebazaar/internal/validate"
)

type RedeemHandler struct {
	Redeem *services.RedeemService
}

type redeemValidateRequest struct {
	Code  string                `json:"code" validate:"required,max=32"`
	Items []checkoutItemRequest `json:"items" validate:"dive"`
}

// POST /api/v1/redeem/validate
// Pure read; never mutates code state.
func (h *RedeemHandler) Validate(c *fiber.Ctx) error {
	var req redeemValidateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return nil
	}
	if _, ok := validate.Code(req.Code); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_code"})
	}

	items := make([]services.CheckoutItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, services.CheckoutItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	res, err := h.Redeem.Validate(req.Code, items)
	if err != nil {
		return respondError(c, "redeem.validate", err)
	}
	return c.JSON(res)
}
