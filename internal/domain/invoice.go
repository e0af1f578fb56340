package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceLine struct {
	ProductID int
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Invoice is the snapshot of a completed checkout. Lines are copied in and
// out so an issued invoice cannot be changed through a shared slice.
type Invoice struct {
	ID       string
	Number   int
	IssuedAt time.Time
	Subtotal decimal.Decimal
	Taxes    decimal.Decimal
	Total    decimal.Decimal
	lines    []InvoiceLine
}

func NewInvoice(id string, number int, issuedAt time.Time, lines []InvoiceLine, subtotal, taxes, total decimal.Decimal) Invoice {
	copied := make([]InvoiceLine, len(lines))
	copy(copied, lines)

	return Invoice{
		ID:       id,
		Number:   number,
		IssuedAt: issuedAt,
		Subtotal: subtotal,
		Taxes:    taxes,
		Total:    total,
		lines:    copied,
	}
}

// InvoiceFromSummary builds an invoice out of the cart as it stood at checkout.
func InvoiceFromSummary(id string, number int, issuedAt time.Time, summary CartSummary) Invoice {
	lines := make([]InvoiceLine, 0, len(summary.Lines))
	for _, l := range summary.Lines {
		lines = append(lines, InvoiceLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}
	return NewInvoice(id, number, issuedAt, lines, summary.Subtotal, summary.Taxes, summary.Total)
}

func (i Invoice) Lines() []InvoiceLine {
	copied := make([]InvoiceLine, len(i.lines))
	copy(copied, i.lines)
	return copied
}
