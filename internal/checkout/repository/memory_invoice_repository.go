package repository

import (
	"context"
	"fmt"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/errors"
)

// MemoryInvoiceRepository keeps issued invoices for the lifetime of the
// process.
type MemoryInvoiceRepository struct {
	mu       sync.RWMutex
	invoices []domain.Invoice
	byID     map[string]int
}

func NewMemoryInvoiceRepository() *MemoryInvoiceRepository {
	return &MemoryInvoiceRepository{byID: make(map[string]int)}
}

func (r *MemoryInvoiceRepository) Save(_ context.Context, invoice domain.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[invoice.ID]; exists {
		return fmt.Errorf("invoice %s already archived", invoice.ID)
	}
	r.byID[invoice.ID] = len(r.invoices)
	r.invoices = append(r.invoices, invoice)
	return nil
}

func (r *MemoryInvoiceRepository) FindByID(_ context.Context, id string) (domain.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return domain.Invoice{}, errors.NewNotFoundError(fmt.Sprintf("invoice with id %s not found", id))
	}
	return r.invoices[idx], nil
}

func (r *MemoryInvoiceRepository) FindAll(_ context.Context) ([]domain.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Invoice, len(r.invoices))
	copy(out, r.invoices)
	return out, nil
}
