package repos

import (
	"bytebazaar/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// Create persists an order and its items in one transaction, so a failure
// partway never leaves an order without its items. prepare runs first
// inside the same transaction and returns the line items to insert
// (checkout uses it to validate stock and snapshot names/prices); an error
// aborts with nothing written. The transaction takes the write lock up
// front (see OpenDB), so concurrent checkouts serialize through here.
func (r *OrderRepo) Create(o domain.Order, prepare func(tx *sqlx.Tx) ([]domain.OrderItem, error)) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	items, err := prepare(tx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`
	  INSERT INTO orders
	    (id, customer_name, customer_email, customer_phone, total, payment_method, redeem_code, status, created_at)
	  VALUES
	    (?,  ?,             ?,              ?,              ?,     ?,              ?,           'pending', CURRENT_TIMESTAMP)
	`, o.ID, o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.Total, o.PaymentMethod, o.RedeemCode); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, product_name, quantity, price)
		  VALUES(?, ?, ?, ?, ?)
		`, o.ID, it.ProductID, it.ProductName, it.Quantity, it.Price); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepo) Get(orderID string) (domain.Order, []domain.OrderItem, error) {
	var o domain.Order
	if err := r.db.Get(&o, `
		SELECT id, customer_name, customer_email, customer_phone, total,
		       payment_method, redeem_code, status, created_at,
		       COALESCE(updated_at,'') AS updated_at
		FROM orders
		WHERE id = ?
	`, orderID); err != nil {
		return domain.Order{}, nil, err
	}

	items, err := r.Items(orderID)
	if err != nil {
		return domain.Order{}, nil, err
	}
	return o, items, nil
}

func (r *OrderRepo) Items(orderID string) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	err := r.db.Select(&items, `
		SELECT order_id, product_id, product_name, quantity, price
		FROM order_items
		WHERE order_id = ?
		ORDER BY product_name
	`, orderID)
	return items, err
}

func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT id, customer_name, customer_email, customer_phone, total,
		       payment_method, redeem_code, status, created_at,
		       COALESCE(updated_at,'') AS updated_at
		FROM orders
		ORDER BY datetime(created_at) DESC, id
		LIMIT ?
	`, limit)
	return out, err
}

// ClaimFulfillment moves an order into newStatus only if it has never been
// in a fulfilled state. The conditional WHERE is the sole race guard: the
// rows-affected result tells the caller whether this request won the claim
// and must run the stock decrement. Safe to retry.
func (r *OrderRepo) ClaimFulfillment(orderID, newStatus string) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE orders
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status NOT IN ('paid','completed')
	`, newStatus, orderID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// UpdateStatus sets the status unconditionally, reporting whether a row
// matched.
func (r *OrderRepo) UpdateStatus(orderID, status string) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE orders
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, status, orderID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
