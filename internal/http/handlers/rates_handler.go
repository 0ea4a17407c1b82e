package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bytebazaar/internal/services"
)

type RatesHandler struct {
	Rates *services.RateService
}

// GET /api/v1/rate
// Display data; never fails.
func (h *RatesHandler) Rate(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"base":  h.Rates.Base,
		"quote": h.Rates.Quote,
		"rate":  h.Rates.Rate(),
	})
}
