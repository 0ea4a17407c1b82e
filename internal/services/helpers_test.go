package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"bytebazaar/internal/repos"
	"bytebazaar/internal/services"
)

// memdb opens a seeded in-memory store. The demo catalog gives every test
// known products (ebook-go-101, key-pixelforge, tool-fontpack,
// audio-synthwave) and redeem codes (SAVE10, LAUNCH5, FONTFAN).
func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newOrderService(db *sqlx.DB) *services.OrderService {
	stockRepo := repos.NewStockRepo(db)
	return services.NewOrderService(
		repos.NewOrderRepo(db),
		repos.NewProductRepo(db),
		stockRepo,
		services.NewStockService(stockRepo),
		repos.NewRedeemRepo(db),
	)
}

func setStock(t *testing.T, db *sqlx.DB, productID string, stock int) {
	t.Helper()
	_, err := db.Exec(`UPDATE products SET stock = ? WHERE id = ?`, stock, productID)
	require.NoError(t, err)
}

func stockOf(t *testing.T, db *sqlx.DB, productID string) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, `SELECT stock FROM products WHERE id = ?`, productID))
	return n
}

func orderCount(t *testing.T, db *sqlx.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM orders`))
	return n
}

func contact() services.Contact {
	return services.Contact{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "+15551230000"}
}
