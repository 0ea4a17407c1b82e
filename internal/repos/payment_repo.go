package repos

import (
	"bytebazaar/internal/domain"

	"github.com/jmoiron/sqlx"
)

type PaymentRepo struct{ db *sqlx.DB }

func NewPaymentRepo(db *sqlx.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// Current returns the newest payment record for an order. Read-only
// context for admin tooling; payments are written by out-of-scope flows.
func (r *PaymentRepo) Current(orderID string) (domain.Payment, error) {
	var p domain.Payment
	err := r.db.Get(&p, `
		SELECT id, order_id, provider, reference, amount, status, created_at
		FROM payments
		WHERE order_id = ?
		ORDER BY datetime(created_at) DESC, id
		LIMIT 1
	`, orderID)
	return p, err
}
