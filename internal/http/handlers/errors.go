package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "bytebazaar/internal/log"
	"bytebazaar/internal/services"
)

// respondError maps service error kinds onto HTTP responses. Unknown
// errors become a generic 500; internals are logged, never leaked.
func respondError(c *fiber.Ctx, action string, err error) error {
	var ise *services.InsufficientStockError
	if errors.As(err, &ise) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      "insufficient_stock",
			"product_id": ise.ProductID,
			"requested":  ise.Requested,
			"available":  ise.Available,
		})
	}
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": ve.Msg})
	}

	switch {
	case errors.Is(err, services.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_status"})
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrCodeNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	case errors.Is(err, services.ErrCodeInactive):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "code_inactive"})
	case errors.Is(err, services.ErrCodeExpired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "code_expired"})
	case errors.Is(err, services.ErrCodeExhausted):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "code_exhausted"})
	case errors.Is(err, services.ErrCodeScopeMismatch):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "code_not_applicable"})
	}

	applog.Error(c, action, err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal"})
}
