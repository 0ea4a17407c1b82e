package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"bytebazaar/internal/domain"
	applog "bytebazaar/internal/log"
	"bytebazaar/internal/repos"
	"bytebazaar/internal/retry"
)

type Contact struct {
	Name  string
	Email string
	Phone string
}

type CheckoutItem struct {
	ProductID string
	Quantity  int
	Name      string
}

var paymentMethods = map[string]bool{
	"card":          true,
	"paypal":        true,
	"bank_transfer": true,
}

// OrderService owns order creation and status transitions.
type OrderService struct {
	Orders  *repos.OrderRepo
	Prods   *repos.ProductRepo
	StockR  *repos.StockRepo
	Stock   *StockService
	Redeems *repos.RedeemRepo
}

func NewOrderService(orders *repos.OrderRepo, prods *repos.ProductRepo, stockRepo *repos.StockRepo, stock *StockService, redeems *repos.RedeemRepo) *OrderService {
	return &OrderService{Orders: orders, Prods: prods, StockR: stockRepo, Stock: stock, Redeems: redeems}
}

// Create validates the cart, then persists the order and its line items in
// one transaction. Stock is checked per item inside that transaction; a
// failing cart produces no partial order. It does not touch physical
// stock; that happens on the first fulfilled transition.
func (s *OrderService) Create(items []CheckoutItem, total decimal.Decimal, contact Contact, paymentMethod, redeemCode string) (string, error) {
	if len(items) == 0 {
		return "", validationf("order has no items")
	}
	for _, it := range items {
		if it.ProductID == "" {
			return "", validationf("item missing product id")
		}
		if it.Quantity < 1 {
			return "", validationf("quantity for %s must be at least 1", it.ProductID)
		}
	}
	if total.Sign() <= 0 {
		return "", validationf("total must be positive")
	}
	if contact.Name == "" || contact.Email == "" {
		return "", validationf("missing customer name or email")
	}
	if !paymentMethods[paymentMethod] {
		return "", validationf("unknown payment method %q", paymentMethod)
	}
	redeemCode = strings.ToUpper(strings.TrimSpace(redeemCode))

	o := domain.Order{
		ID:            uuid.NewString(),
		CustomerName:  contact.Name,
		CustomerEmail: contact.Email,
		CustomerPhone: contact.Phone,
		Total:         total,
		PaymentMethod: paymentMethod,
		RedeemCode:    redeemCode,
		Status:        domain.StatusPending,
	}

	// The whole transaction rolls back on failure, so retrying it on a
	// transient error re-runs from scratch.
	err := retry.Do(func() error {
		return s.Orders.Create(o, func(tx *sqlx.Tx) ([]domain.OrderItem, error) {
			snap := make([]domain.OrderItem, 0, len(items))
			for _, it := range items {
				p, err := s.Prods.GetTx(tx, it.ProductID)
				if err != nil {
					if errors.Is(err, sql.ErrNoRows) {
						return nil, fmt.Errorf("%w: %s", ErrProductNotFound, it.ProductID)
					}
					return nil, err
				}
				lv, err := s.StockR.LevelTx(tx, it.ProductID)
				if err != nil {
					return nil, err
				}
				if lv.Available <= 0 || it.Quantity > lv.Available {
					avail := lv.Available
					if avail < 0 {
						avail = 0
					}
					return nil, &InsufficientStockError{ProductID: it.ProductID, Requested: it.Quantity, Available: avail}
				}
				snap = append(snap, domain.OrderItem{
					OrderID:     o.ID,
					ProductID:   p.ID,
					ProductName: p.Title,
					Quantity:    it.Quantity,
					Price:       p.Price,
				})
			}
			return snap, nil
		})
	})
	if err != nil {
		return "", err
	}

	// Best-effort usage bump; the order already exists, so a failure here
	// is logged and swallowed. Not retried: the raw increment is not safe
	// to repeat after an ambiguous failure.
	if redeemCode != "" {
		if err := s.Redeems.IncrementUsage(redeemCode); err != nil {
			applog.Warn(nil, "redeem.increment.fail", err, map[string]any{
				"order_id": o.ID, "code": redeemCode,
			})
		}
	}

	return o.ID, nil
}

// Get returns an order with its items.
func (s *OrderService) Get(orderID string) (domain.Order, []domain.OrderItem, error) {
	var (
		o     domain.Order
		items []domain.OrderItem
	)
	err := retry.Do(func() error {
		var e error
		o, items, e = s.Orders.Get(orderID)
		return e
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return domain.Order{}, nil, err
	}
	return o, items, nil
}

// Transition moves an order to newStatus. For fulfilled targets the
// status check and update are a single conditional write; whichever
// request wins that claim runs the stock decrement, so N concurrent
// "paid" requests decrement exactly once.
func (s *OrderService) Transition(orderID, newStatus string) error {
	if !domain.ValidStatus(newStatus) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	if !domain.Fulfilled(newStatus) {
		var matched bool
		err := retry.Do(func() error {
			var e error
			matched, e = s.Orders.UpdateStatus(orderID, newStatus)
			return e
		})
		if err != nil {
			return err
		}
		if !matched {
			return fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return nil
	}

	var claimed bool
	err := retry.Do(func() error {
		var e error
		claimed, e = s.Orders.ClaimFulfillment(orderID, newStatus)
		return e
	})
	if err != nil {
		return err
	}

	if claimed {
		var items []domain.OrderItem
		err := retry.Do(func() error {
			var e error
			items, e = s.Orders.Items(orderID)
			return e
		})
		if err != nil {
			return err
		}
		return s.Stock.Decrement(orderID, items)
	}

	// Claim lost: the order is already fulfilled (move paid -> completed
	// without touching stock) or does not exist at all.
	var matched bool
	err = retry.Do(func() error {
		var e error
		matched, e = s.Orders.UpdateStatus(orderID, newStatus)
		return e
	})
	if err != nil {
		return err
	}
	if !matched {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	return nil
}
