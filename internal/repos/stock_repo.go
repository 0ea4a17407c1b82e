package repos

import (
	"bytebazaar/internal/domain"

	"github.com/jmoiron/sqlx"
)

type StockRepo struct{ db *sqlx.DB }

func NewStockRepo(db *sqlx.DB) *StockRepo { return &StockRepo{db: db} }

// StockLevel pairs physical stock with the quantity still free to sell.
// Available subtracts quantities committed to open orders (pending or
// payment_pending) that have not yet consumed physical stock.
type StockLevel struct {
	Stock     int `db:"stock"`
	Available int `db:"available"`
}

const stockLevelQuery = `
	SELECT p.stock,
	       p.stock - COALESCE((
	         SELECT SUM(oi.quantity)
	         FROM order_items oi
	         JOIN orders o ON o.id = oi.order_id
	         WHERE oi.product_id = p.id
	           AND o.status IN ('pending','payment_pending')
	       ), 0) AS available
	FROM products p
	WHERE p.id = ?`

// Level returns the stock level for a product. Propagates sql.ErrNoRows
// when the product does not exist.
func (r *StockRepo) Level(productID string) (StockLevel, error) {
	var lv StockLevel
	err := r.db.Get(&lv, stockLevelQuery, productID)
	return lv, err
}

// LevelTx is Level inside an open transaction, used by checkout so the
// availability check and the order insert observe one consistent state.
func (r *StockRepo) LevelTx(tx *sqlx.Tx, productID string) (StockLevel, error) {
	var lv StockLevel
	err := tx.Get(&lv, stockLevelQuery, productID)
	return lv, err
}

// Oversold reports a product whose stock went negative during a decrement.
type Oversold struct {
	ProductID string `db:"id"`
	Stock     int    `db:"stock"`
}

// Decrement subtracts each line quantity from physical stock in one
// transaction. It does not clamp at zero: a lost race is recorded as a
// negative quantity and returned for the caller to flag. Exactly-once is
// the caller's guarantee (the fulfillment claim), not this method's.
func (r *StockRepo) Decrement(items []domain.OrderItem) ([]Oversold, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var over []Oversold
	for _, it := range items {
		if _, err := tx.Exec(`
			UPDATE products
			SET stock = stock - ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`, it.Quantity, it.ProductID); err != nil {
			return nil, err
		}
		var stock int
		if err := tx.Get(&stock, `SELECT stock FROM products WHERE id = ?`, it.ProductID); err != nil {
			return nil, err
		}
		if stock < 0 {
			over = append(over, Oversold{ProductID: it.ProductID, Stock: stock})
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return over, nil
}

// UpsertStock sets the stock count for a product (admin tooling).
func (r *StockRepo) UpsertStock(productID string, stock int) error {
	_, err := r.db.Exec(`
		UPDATE products
		SET stock = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, stock, productID)
	return err
}

// Row used by the admin inventory listing.
type InventoryRow struct {
	ProductID string `db:"id"`
	Title     string `db:"title"`
	Stock     int    `db:"stock"`
	Active    bool   `db:"active"`
}

func (r *StockRepo) ListAll() ([]InventoryRow, error) {
	var rows []InventoryRow
	err := r.db.Select(&rows, `
		SELECT id, title, stock, active
		FROM products
		ORDER BY title
	`)
	return rows, err
}
