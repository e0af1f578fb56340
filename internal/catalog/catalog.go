package catalog

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	apperrors "storefront/internal/errors"
)

// Catalog owns the products of the store. Readers get copies; stock is only
// changed through Reserve and Release, which the cart ledger calls while
// holding its own lock.
type Catalog struct {
	mu       sync.RWMutex
	products map[int]*domain.Product
	order    []int
}

func New(products ...domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: make(map[int]*domain.Product, len(products)),
		order:    make([]int, 0, len(products)),
	}

	for _, p := range products {
		if p.ID <= 0 {
			return nil, apperrors.NewValidationError("invalid catalog", apperrors.ValidationDetail{
				Field:   "id",
				Message: fmt.Sprintf("product id %d must be a positive integer", p.ID),
			})
		}
		if _, exists := c.products[p.ID]; exists {
			return nil, apperrors.NewValidationError("invalid catalog", apperrors.ValidationDetail{
				Field:   "id",
				Message: fmt.Sprintf("product id %d is duplicated", p.ID),
			})
		}
		product := p
		c.products[p.ID] = &product
		c.order = append(c.order, p.ID)
	}

	return c, nil
}

func (c *Catalog) Lookup(id int) (domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[id]
	if !ok {
		return domain.Product{}, apperrors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	return *p, nil
}

// Products returns every product in seed order.
func (c *Catalog) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.products[id])
	}
	return out
}

func (c *Catalog) Reserve(id, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[id]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	return p.Reserve(quantity)
}

func (c *Catalog) Release(id, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[id]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	return p.Release(quantity)
}

// DefaultProducts is the storefront's built-in assortment.
func DefaultProducts() []domain.Product {
	seed := []struct {
		id    int
		name  string
		price int64
		stock int
	}{
		{1, "Laptop Gaming", 1200, 10},
		{2, "Smartphone Android", 500, 15},
		{3, "Tablet 10 pulgadas", 300, 8},
		{4, "Auriculares Bluetooth", 80, 20},
		{5, "Teclado Mecánico", 120, 12},
		{6, "Monitor 24\"", 250, 7},
		{7, "Mouse Inalámbrico", 40, 18},
		{8, "Impresora Multifuncional", 200, 5},
	}

	products := make([]domain.Product, 0, len(seed))
	for _, s := range seed {
		p, err := domain.NewProduct(s.id, s.name, decimal.NewFromInt(s.price), s.stock)
		if err != nil {
			panic(err)
		}
		products = append(products, p)
	}
	return products
}
