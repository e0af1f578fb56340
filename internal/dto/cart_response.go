package dto

import (
	"time"

	"storefront/internal/domain"
)

type CartResponse struct {
	TraceID   string        `json:"traceId"`
	State     string        `json:"state"`
	Lines     []CartLineDTO `json:"lines"`
	Subtotal  string        `json:"subtotal"`
	Taxes     string        `json:"taxes"`
	Total     string        `json:"total"`
	Timestamp time.Time     `json:"timestamp"`
}

type CartLineDTO struct {
	ProductID   int    `json:"productId"`
	Name        string `json:"name"`
	UnitPrice   string `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	LineTotal   string `json:"lineTotal"`
	MaxQuantity int    `json:"maxQuantity"`
}

func NewCartResponse(traceID string, summary domain.CartSummary) CartResponse {
	lines := make([]CartLineDTO, len(summary.Lines))
	for i, l := range summary.Lines {
		lines[i] = CartLineDTO{
			ProductID:   l.ProductID,
			Name:        l.Name,
			UnitPrice:   Money(l.UnitPrice),
			Quantity:    l.Quantity,
			LineTotal:   Money(l.LineTotal),
			MaxQuantity: l.MaxQuantity,
		}
	}

	state := summary.State
	if state == "" {
		state = domain.CartStateEmpty
	}

	return CartResponse{
		TraceID:   traceID,
		State:     string(state),
		Lines:     lines,
		Subtotal:  Money(summary.Subtotal),
		Taxes:     Money(summary.Taxes),
		Total:     Money(summary.Total),
		Timestamp: time.Now().UTC(),
	}
}
