package dto

import (
	"time"

	"storefront/internal/domain"
)

type InvoiceResponse struct {
	TraceID  string           `json:"traceId"`
	ID       string           `json:"id"`
	Number   int              `json:"number"`
	IssuedAt time.Time        `json:"issuedAt"`
	Lines    []InvoiceLineDTO `json:"lines"`
	Subtotal string           `json:"subtotal"`
	Taxes    string           `json:"taxes"`
	Total    string           `json:"total"`
}

type InvoiceLineDTO struct {
	ProductID int    `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
}

type InvoiceListResponse struct {
	TraceID  string            `json:"traceId"`
	Invoices []InvoiceResponse `json:"invoices"`
}

func NewInvoiceResponse(traceID string, invoice domain.Invoice) InvoiceResponse {
	src := invoice.Lines()
	lines := make([]InvoiceLineDTO, len(src))
	for i, l := range src {
		lines[i] = InvoiceLineDTO{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: Money(l.UnitPrice),
			LineTotal: Money(l.LineTotal),
		}
	}

	return InvoiceResponse{
		TraceID:  traceID,
		ID:       invoice.ID,
		Number:   invoice.Number,
		IssuedAt: invoice.IssuedAt.UTC(),
		Lines:    lines,
		Subtotal: Money(invoice.Subtotal),
		Taxes:    Money(invoice.Taxes),
		Total:    Money(invoice.Total),
	}
}
