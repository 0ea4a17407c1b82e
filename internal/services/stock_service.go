package services

import (
	"database/sql"
	"errors"
	"fmt"

	"bytebazaar/internal/domain"
	applog "bytebazaar/internal/log"
	"bytebazaar/internal/repos"
	"bytebazaar/internal/retry"
)

// StockService is the stock ledger: availability checks and the
// once-per-fulfillment decrement.
type StockService struct {
	Stock *repos.StockRepo
}

func NewStockService(stock *repos.StockRepo) *StockService {
	return &StockService{Stock: stock}
}

// CheckAvailable reports whether qty units of a product can be sold right
// now. Availability accounts for units already committed to open orders.
func (s *StockService) CheckAvailable(productID string, qty int) (domain.Availability, error) {
	var lv repos.StockLevel
	err := retry.Do(func() error {
		var e error
		lv, e = s.Stock.Level(productID)
		return e
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Availability{}, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
		}
		return domain.Availability{}, err
	}
	return availability(lv.Available, qty), nil
}

func availability(available, qty int) domain.Availability {
	a := domain.Availability{Stock: available}
	if available < 0 {
		a.Stock = 0
	}
	a.Available = available > 0 && qty <= available
	switch {
	case available >= 5:
		a.Status = "IN_STOCK"
	case available > 0:
		a.Status = "LOW_STOCK"
	default:
		a.Status = "OUT_OF_STOCK"
	}
	return a
}

// Decrement reduces physical stock by each line item's quantity. Called
// exactly once per order, by whichever transition request won the
// fulfillment claim. Oversell is recorded as a warning naming the product,
// never as a failure of the triggering request.
func (s *StockService) Decrement(orderID string, items []domain.OrderItem) error {
	var over []repos.Oversold
	err := retry.Do(func() error {
		// The repo decrements inside one transaction, so a failed attempt
		// rolled back and is safe to repeat.
		var e error
		over, e = s.Stock.Decrement(items)
		return e
	})
	if err != nil {
		return err
	}
	for _, o := range over {
		applog.Warn(nil, "stock.oversell", nil, map[string]any{
			"order_id": orderID, "product_id": o.ProductID, "stock": o.Stock,
		})
	}
	return nil
}
