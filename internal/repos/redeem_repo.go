package repos

import (
	"bytebazaar/internal/domain"

	"github.com/jmoiron/sqlx"
)

type RedeemRepo struct{ db *sqlx.DB }

func NewRedeemRepo(db *sqlx.DB) *RedeemRepo { return &RedeemRepo{db: db} }

// ByCode looks up a redeem code; the caller normalizes before calling.
// Propagates sql.ErrNoRows when absent.
func (r *RedeemRepo) ByCode(code string) (domain.RedeemCode, error) {
	var rc domain.RedeemCode
	err := r.db.Get(&rc, `
		SELECT code, product_id, discount_percent, discount_amount,
		       max_uses, used_count, expires_at, active, created_at
		FROM redeem_codes
		WHERE code = ?
	`, code)
	return rc, err
}

// IncrementUsage bumps used_count by one. Best-effort: the caller logs and
// swallows failures, and must not retry it: a repeat after an ambiguous
// failure would double-count.
func (r *RedeemRepo) IncrementUsage(code string) error {
	_, err := r.db.Exec(`
		UPDATE redeem_codes SET used_count = used_count + 1 WHERE code = ?
	`, code)
	return err
}
