package domain

import "github.com/shopspring/decimal"

// Order statuses. Stock is decremented exactly once when an order first
// enters StatusPaid or StatusCompleted.
const (
	StatusPending        = "pending"
	StatusPaymentPending = "payment_pending"
	StatusPaid           = "paid"
	StatusCompleted      = "completed"
	StatusCancelled      = "cancelled"
)

// ValidStatus reports whether s is one of the enumerated order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPaymentPending, StatusPaid, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Fulfilled reports whether s is a status at or past which inventory must
// have been decremented.
func Fulfilled(s string) bool {
	return s == StatusPaid || s == StatusCompleted
}

type Product struct {
	ID          string          `db:"id" json:"id"`
	Category    string          `db:"category" json:"category"`
	Title       string          `db:"title" json:"title"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	FileKey     string          `db:"file_key" json:"-"`
	Stock       int             `db:"stock" json:"stock"`
	Active      bool            `db:"active" json:"active"`
	CreatedAt   string          `db:"created_at" json:"created_at"`
	UpdatedAt   string          `db:"updated_at" json:"-"`
}

type Order struct {
	ID            string          `db:"id" json:"id"`
	CustomerName  string          `db:"customer_name" json:"customer_name"`
	CustomerEmail string          `db:"customer_email" json:"customer_email"`
	CustomerPhone string          `db:"customer_phone" json:"customer_phone"`
	Total         decimal.Decimal `db:"total" json:"total"`
	PaymentMethod string          `db:"payment_method" json:"payment_method"`
	RedeemCode    string          `db:"redeem_code" json:"redeem_code,omitempty"`
	Status        string          `db:"status" json:"status"`
	CreatedAt     string          `db:"created_at" json:"created_at"`
	UpdatedAt     string          `db:"updated_at" json:"-"`
}

// OrderItem snapshots name and unit price at purchase time; the snapshot is
// authoritative for invoicing even if the product changes later.
type OrderItem struct {
	OrderID     string          `db:"order_id" json:"-"`
	ProductID   string          `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	Quantity    int             `db:"quantity" json:"quantity"`
	Price       decimal.Decimal `db:"price" json:"price"`
}

type RedeemCode struct {
	Code            string          `db:"code"`
	ProductID       string          `db:"product_id"` // empty = any cart
	DiscountPercent decimal.Decimal `db:"discount_percent"`
	DiscountAmount  decimal.Decimal `db:"discount_amount"`
	MaxUses         int             `db:"max_uses"` // 0 = unlimited
	UsedCount       int             `db:"used_count"`
	ExpiresAt       string          `db:"expires_at"` // RFC3339, empty = never
	Active          bool            `db:"active"`
	CreatedAt       string          `db:"created_at"`
}

// Payment is read-only context for admin tooling.
type Payment struct {
	ID        string          `db:"id" json:"id"`
	OrderID   string          `db:"order_id" json:"order_id"`
	Provider  string          `db:"provider" json:"provider"`
	Reference string          `db:"reference" json:"reference"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Status    string          `db:"status" json:"status"`
	CreatedAt string          `db:"created_at" json:"created_at"`
}

type Availability struct {
	Status    string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Available bool   `json:"available"`
	Stock     int    `json:"stock"`
}
