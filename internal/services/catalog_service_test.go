package services_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bytebazaar/internal/domain"
	"bytebazaar/internal/services"
)

// fakeLister counts fetches and fails on demand.
type fakeLister struct {
	products []domain.Product
	err      error
	listed   int
	byCat    int
	got      int
}

func (f *fakeLister) ListActive() ([]domain.Product, error) {
	f.listed++
	return f.products, f.err
}

func (f *fakeLister) ListByCategory(string) ([]domain.Product, error) {
	f.byCat++
	return f.products, f.err
}

func (f *fakeLister) Get(id string) (domain.Product, error) {
	f.got++
	if f.err != nil {
		return domain.Product{}, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, sql.ErrNoRows
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newCatalog(products ...domain.Product) (*services.CatalogService, *fakeLister, *fakeClock) {
	lister := &fakeLister{products: products}
	clk := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return services.NewCatalogService(lister, clk.now), lister, clk
}

func TestListProductsCachesWithinTTL(t *testing.T) {
	svc, lister, clk := newCatalog(domain.Product{ID: "p1", Title: "One"})

	first := svc.ListProducts()
	require.Len(t, first, 1)
	assert.Equal(t, 1, lister.listed)

	clk.advance(services.CatalogTTL - time.Second)
	svc.ListProducts()
	assert.Equal(t, 1, lister.listed, "fresh cache must not hit storage")
}

func TestListProductsRefetchesAfterTTL(t *testing.T) {
	svc, lister, clk := newCatalog(domain.Product{ID: "p1"})

	svc.ListProducts()
	clk.advance(services.CatalogTTL)

	lister.products = append(lister.products, domain.Product{ID: "p2"})
	got := svc.ListProducts()
	assert.Equal(t, 2, lister.listed)
	assert.Len(t, got, 2, "expired cache serves the refetched listing")
}

func TestListProductsServesStaleOnOutage(t *testing.T) {
	svc, lister, clk := newCatalog(domain.Product{ID: "p1", Title: "One"})

	svc.ListProducts()
	clk.advance(services.CatalogTTL + time.Minute)
	lister.err = errors.New("read tcp: connection reset by peer")

	got := svc.ListProducts()
	require.Len(t, got, 1)
	assert.Equal(t, "One", got[0].Title, "connectivity outage falls back to the stale entry")
}

func TestListProductsPermanentErrorDropsStale(t *testing.T) {
	svc, lister, clk := newCatalog(domain.Product{ID: "p1", Title: "One"})

	svc.ListProducts()
	clk.advance(services.CatalogTTL + time.Minute)
	lister.err = errors.New("no such table: products")

	got := svc.ListProducts()
	assert.Empty(t, got, "a broken store must not keep serving the old catalog")
	assert.Equal(t, 2, lister.listed, "permanent errors are not retried")
}

func TestListProductsEmptyOnColdError(t *testing.T) {
	svc, lister, _ := newCatalog()
	lister.err = errors.New("disk I/O error")

	got := svc.ListProducts()
	assert.NotNil(t, got)
	assert.Empty(t, got, "no cache and no storage degrades to an empty list")
}

func TestListByCategoryKeysIndependently(t *testing.T) {
	svc, lister, _ := newCatalog(domain.Product{ID: "p1", Category: "ebooks"})

	svc.ListProductsByCategory("ebooks")
	svc.ListProductsByCategory("assets")
	svc.ListProductsByCategory("ebooks")
	assert.Equal(t, 2, lister.byCat, "each category fills its own cache entry")
}

func TestGetProduct(t *testing.T) {
	svc, _, _ := newCatalog(domain.Product{ID: "p1", Title: "One"})

	p, err := svc.GetProduct("p1")
	require.NoError(t, err)
	assert.Equal(t, "One", p.Title)

	_, err = svc.GetProduct("missing")
	require.ErrorIs(t, err, services.ErrProductNotFound)
}
