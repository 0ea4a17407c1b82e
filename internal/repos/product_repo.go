package repos

import (
	"bytebazaar/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) ListActive() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT
	    id, category, title, description, price, file_key, stock, active,
	    created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  WHERE active = 1
	  ORDER BY created_at DESC, id
	`)
	return out, err
}

func (r *ProductRepo) ListByCategory(category string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT
	    id, category, title, description, price, file_key, stock, active,
	    created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  WHERE category = ? AND active = 1
	  ORDER BY created_at DESC, id
	`, category)
	return out, err
}

// GetTx reads a product inside an open transaction; checkout snapshots
// names and unit prices with it.
func (r *ProductRepo) GetTx(tx *sqlx.Tx, id string) (domain.Product, error) {
	var p domain.Product
	err := tx.Get(&p, `
	  SELECT
	    id, category, title, description, price, file_key, stock, active,
	    created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  WHERE id = ?
	`, id)
	return p, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT
	    id, category, title, description, price, file_key, stock, active,
	    created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  WHERE id = ?
	`, id)
	return p, err
}
