package handlers

import (
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	applog "bytebazaar/internal/log"
)

// bodyValidator validates JSON request bodies. Named to stay clear of the
// internal/validate package used for query and path scalars.
var bodyValidator = newValidator()

func newValidator() *validatorv10.Validate {
	v := validatorv10.New()
	// One order line per product: duplicate lines would collide on the
	// order_items primary key deep in the store, so reject them up front.
	v.RegisterStructValidation(checkoutStructValidation, checkoutRequest{})
	return v
}

func checkoutStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(checkoutRequest)
	seen := make(map[string]bool, len(req.Items))
	for _, it := range req.Items {
		if seen[it.ProductID] {
			sl.ReportError(req.Items, "items", "Items", "unique_products", it.ProductID)
			return
		}
		seen[it.ProductID] = true
	}
}

// bindAndValidate parses the JSON body into out and validates it. On
// failure it writes a 400 response and returns an error so the handler can
// short-circuit.
func bindAndValidate(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"reason": "bad_body"})
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request_body"})
		return err
	}
	if err := bodyValidator.Struct(out); err != nil {
		fields := map[string]string{}
		if ve, ok := err.(validatorv10.ValidationErrors); ok {
			for _, fe := range ve {
				fields[fe.StructNamespace()] = fe.Tag()
			}
		}
		applog.Security(c, "validation.fail", map[string]any{"fields": fields})
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "fields": fields})
		return err
	}
	return nil
}
