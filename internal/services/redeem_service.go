package services

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bytebazaar/internal/domain"
	applog "bytebazaar/internal/log"
	"bytebazaar/internal/repos"
	"bytebazaar/internal/retry"
)

// RedeemResult carries the discount terms of a valid code.
type RedeemResult struct {
	Code            string          `json:"code"`
	ProductID       string          `json:"product_id,omitempty"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
}

// RedeemService validates discount codes against a cart. Validation never
// mutates code state; the usage increment happens only as part of a
// successful order creation.
type RedeemService struct {
	Codes *repos.RedeemRepo
	Now   func() time.Time
}

func NewRedeemService(codes *repos.RedeemRepo) *RedeemService {
	return &RedeemService{Codes: codes, Now: time.Now}
}

// Normalize trims and uppercases a redeem code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *RedeemService) Validate(code string, items []CheckoutItem) (RedeemResult, error) {
	code = Normalize(code)
	if code == "" {
		return RedeemResult{}, ErrCodeNotFound
	}

	var rc domain.RedeemCode
	err := retry.Do(func() error {
		var e error
		rc, e = s.Codes.ByCode(code)
		return e
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RedeemResult{}, ErrCodeNotFound
		}
		return RedeemResult{}, err
	}

	if !rc.Active {
		return RedeemResult{}, ErrCodeInactive
	}
	if rc.ExpiresAt != "" {
		exp, perr := time.Parse(time.RFC3339, rc.ExpiresAt)
		if perr != nil {
			// Fail closed: a code whose expiry cannot be read must not be
			// treated as never-expiring.
			applog.Warn(nil, "redeem.expiry.unparsable", perr, map[string]any{"code": rc.Code})
			return RedeemResult{}, ErrCodeExpired
		}
		if exp.Before(s.Now()) {
			return RedeemResult{}, ErrCodeExpired
		}
	}
	if rc.MaxUses > 0 && rc.UsedCount >= rc.MaxUses {
		return RedeemResult{}, ErrCodeExhausted
	}
	if rc.ProductID != "" {
		found := false
		for _, it := range items {
			if it.ProductID == rc.ProductID {
				found = true
				break
			}
		}
		if !found {
			return RedeemResult{}, ErrCodeScopeMismatch
		}
	}

	return RedeemResult{
		Code:            rc.Code,
		ProductID:       rc.ProductID,
		DiscountPercent: rc.DiscountPercent,
		DiscountAmount:  rc.DiscountAmount,
	}, nil
}
