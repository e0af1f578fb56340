package domain

import "github.com/shopspring/decimal"

// CartLine references a catalog product by id together with the quantity
// borrowed from its stock.
type CartLine struct {
	ProductID int
	Quantity  int
}

// LineView is a read model of a cart line joined with its product.
type LineView struct {
	ProductID   int
	Name        string
	UnitPrice   decimal.Decimal
	Quantity    int
	LineTotal   decimal.Decimal
	MaxQuantity int
}

type CartState string

const (
	CartStateEmpty     CartState = "EMPTY"
	CartStatePopulated CartState = "POPULATED"
)

// CartSummary is one consistent read of the cart lines and totals.
type CartSummary struct {
	State    CartState
	Lines    []LineView
	Subtotal decimal.Decimal
	Taxes    decimal.Decimal
	Total    decimal.Decimal
}
