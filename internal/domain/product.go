package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "storefront/internal/errors"
)

// Product is a sellable catalog item. Stock is only reachable through
// Reserve and Release so it can never go negative.
type Product struct {
	ID    int
	Name  string
	Price decimal.Decimal
	stock int
}

func NewProduct(id int, name string, price decimal.Decimal, stock int) (Product, error) {
	var details []apperrors.ValidationDetail

	if id <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
	}
	if name == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}
	if price.IsNegative() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be non-negative",
		})
	}
	if stock < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "stock",
			Message: "stock must be non-negative",
		})
	}

	if len(details) > 0 {
		return Product{}, apperrors.NewValidationError(fmt.Sprintf("invalid product %d", id), details...)
	}

	return Product{ID: id, Name: name, Price: price, stock: stock}, nil
}

func (p Product) Stock() int {
	return p.stock
}

// Reserve takes quantity units out of stock.
func (p *Product) Reserve(quantity int) error {
	if quantity <= 0 {
		return apperrors.NewInvalidQuantityError(p.ID, quantity)
	}
	if quantity > p.stock {
		return apperrors.NewInsufficientStockError(p.ID, quantity, p.stock)
	}
	p.stock -= quantity
	return nil
}

// Release puts quantity units back into stock.
func (p *Product) Release(quantity int) error {
	if quantity <= 0 {
		return apperrors.NewInvalidQuantityError(p.ID, quantity)
	}
	p.stock += quantity
	return nil
}

func (p Product) LineTotal(quantity int) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(quantity)))
}
