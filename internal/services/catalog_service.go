package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bytebazaar/internal/cache"
	"bytebazaar/internal/domain"
	applog "bytebazaar/internal/log"
	"bytebazaar/internal/retry"
)

// CatalogTTL is how long a cached listing is served without touching
// storage. Catalog reads may lag writes by up to this much.
const CatalogTTL = 60 * time.Second

const allKey = "all"

// ProductLister is the storage surface the catalog needs. Narrow so tests
// can count fetches and inject failures.
type ProductLister interface {
	ListActive() ([]domain.Product, error)
	ListByCategory(category string) ([]domain.Product, error)
	Get(id string) (domain.Product, error)
}

// CatalogService serves product listings through short-TTL read-through
// caches. Listing reads never fail: transient storage errors degrade to
// the stale cached entry, anything else to an empty list.
type CatalogService struct {
	Prods ProductLister
	all   *cache.TTL[[]domain.Product]
	byCat *cache.TTL[[]domain.Product]
}

func NewCatalogService(prods ProductLister, now func() time.Time) *CatalogService {
	return &CatalogService{
		Prods: prods,
		all:   cache.NewTTL[[]domain.Product](CatalogTTL, now),
		byCat: cache.NewTTL[[]domain.Product](CatalogTTL, now),
	}
}

func (s *CatalogService) ListProducts() []domain.Product {
	return listThrough(s.all, allKey, s.Prods.ListActive)
}

func (s *CatalogService) ListProductsByCategory(category string) []domain.Product {
	return listThrough(s.byCat, category, func() ([]domain.Product, error) {
		return s.Prods.ListByCategory(category)
	})
}

func listThrough(c *cache.TTL[[]domain.Product], key string, fetch func() ([]domain.Product, error)) []domain.Product {
	if cached, ok := c.Get(key); ok {
		return cached
	}

	var fresh []domain.Product
	err := retry.Do(func() error {
		var e error
		fresh, e = fetch()
		return e
	})
	if err == nil {
		c.Set(key, fresh)
		return fresh
	}

	// Degrade rather than propagate: stale beats empty beats an error page.
	// Only a connectivity failure earns the stale entry; a permanent error
	// (schema drift, bad query) must not keep masquerading as a catalog.
	if retry.Transient(err) {
		if stale, ok := c.GetStale(key); ok {
			applog.Warn(nil, "catalog.read.stale", err, map[string]any{"key": key})
			return stale
		}
	}
	applog.Warn(nil, "catalog.read.empty", err, map[string]any{"key": key})
	return []domain.Product{}
}

// GetProduct returns a single product; detail reads are uncached.
func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	var p domain.Product
	err := retry.Do(func() error {
		var e error
		p, e = s.Prods.Get(id)
		return e
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
		return domain.Product{}, err
	}
	return p, nil
}
