package catalog

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	apperrors "storefront/internal/errors"
)

func mustProduct(t *testing.T, id int, name string, price int64, stock int) domain.Product {
	t.Helper()
	p, err := domain.NewProduct(id, name, decimal.NewFromInt(price), stock)
	require.NoError(t, err)
	return p
}

func TestNew_KeepsSeedOrder(t *testing.T) {
	c, err := New(
		mustProduct(t, 3, "Tablet", 300, 8),
		mustProduct(t, 1, "Laptop", 1200, 10),
	)
	require.NoError(t, err)

	products := c.Products()
	require.Len(t, products, 2)
	assert.Equal(t, 3, products[0].ID)
	assert.Equal(t, 1, products[1].ID)
}

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	_, err := New(
		mustProduct(t, 1, "Laptop", 1200, 10),
		mustProduct(t, 1, "Other", 10, 1),
	)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Details[0].Message, "duplicated")
}

func TestNew_RejectsNonPositiveIDs(t *testing.T) {
	_, err := New(domain.Product{ID: 0, Name: "Ghost"})

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestLookup(t *testing.T) {
	c, err := New(DefaultProducts()...)
	require.NoError(t, err)

	p, err := c.Lookup(6)
	require.NoError(t, err)
	assert.Equal(t, `Monitor 24"`, p.Name)
	assert.Equal(t, 7, p.Stock())

	_, err = c.Lookup(99)
	nf, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "product with id 99 not found", nf.Message)
}

func TestLookup_ReturnsCopy(t *testing.T) {
	c, err := New(DefaultProducts()...)
	require.NoError(t, err)

	p, err := c.Lookup(1)
	require.NoError(t, err)
	require.NoError(t, p.Reserve(5))

	again, err := c.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, 10, again.Stock())
}

func TestReserveAndRelease(t *testing.T) {
	c, err := New(DefaultProducts()...)
	require.NoError(t, err)

	require.NoError(t, c.Reserve(8, 5))
	p, _ := c.Lookup(8)
	assert.Equal(t, 0, p.Stock())

	err = c.Reserve(8, 1)
	is, ok := apperrors.IsInsufficientStockError(err)
	require.True(t, ok)
	assert.Equal(t, 0, is.Available)

	require.NoError(t, c.Release(8, 2))
	p, _ = c.Lookup(8)
	assert.Equal(t, 2, p.Stock())

	_, ok = apperrors.IsNotFoundError(c.Reserve(42, 1))
	assert.True(t, ok)
	_, ok = apperrors.IsNotFoundError(c.Release(42, 1))
	assert.True(t, ok)
}

func TestReserve_Concurrent(t *testing.T) {
	c, err := New(mustProduct(t, 1, "Laptop", 1200, 50))
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.Reserve(1, 1) == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	p, _ := c.Lookup(1)
	assert.Equal(t, 50, succeeded)
	assert.Equal(t, 0, p.Stock())
}

func TestDefaultProducts(t *testing.T) {
	products := DefaultProducts()

	require.Len(t, products, 8)
	assert.Equal(t, "Laptop Gaming", products[0].Name)
	assert.True(t, decimal.NewFromInt(1200).Equal(products[0].Price))
	assert.Equal(t, 5, products[7].Stock())
	for i, p := range products {
		assert.Equal(t, i+1, p.ID)
	}
}
