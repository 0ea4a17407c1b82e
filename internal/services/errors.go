package services

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrBadCreds        = errors.New("invalid email or password")

	// Redeem code validation failure kinds.
	ErrCodeNotFound      = errors.New("redeem code not found")
	ErrCodeInactive      = errors.New("redeem code is inactive")
	ErrCodeExpired       = errors.New("redeem code has expired")
	ErrCodeExhausted     = errors.New("redeem code has no uses left")
	ErrCodeScopeMismatch = errors.New("redeem code does not apply to this cart")
)

// ValidationError marks bad input shape or values; always a client error.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InsufficientStockError names the first product whose requested quantity
// exceeds what is available.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (need %d, have %d)", e.ProductID, e.Requested, e.Available)
}
