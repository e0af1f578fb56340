package service

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	apperrors "storefront/internal/errors"
)

// Inventory is the part of the catalog the ledger borrows stock from.
type Inventory interface {
	Lookup(id int) (domain.Product, error)
	Reserve(id, quantity int) error
	Release(id, quantity int) error
}

// Ledger keeps the shopper's cart. Every quantity held by a line has been
// reserved out of the product's stock, so stock + line quantity is constant
// for the life of the line. All operations are serialized; the ledger lock is
// always taken before the catalog's.
type Ledger struct {
	mu        sync.Mutex
	inventory Inventory
	taxRate   decimal.Decimal
	lines     []domain.CartLine
}

func NewLedger(inventory Inventory, taxRate decimal.Decimal) *Ledger {
	return &Ledger{
		inventory: inventory,
		taxRate:   taxRate,
	}
}

func (l *Ledger) TaxRate() decimal.Decimal {
	return l.taxRate
}

// AddItem reserves quantity units of the product and merges them into its
// line, creating the line when the product is not in the cart yet.
func (l *Ledger) AddItem(productID, quantity int) error {
	if quantity <= 0 {
		return apperrors.NewInvalidQuantityError(productID, quantity)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Reserve is all-or-nothing, so the line is only touched once stock moved.
	if err := l.inventory.Reserve(productID, quantity); err != nil {
		return err
	}

	if idx := l.indexOf(productID); idx >= 0 {
		l.lines[idx].Quantity += quantity
		return nil
	}

	l.lines = append(l.lines, domain.CartLine{ProductID: productID, Quantity: quantity})
	return nil
}

// RemoveItem drops the product's line and returns its stock. Removing a
// product that is not in the cart does nothing.
func (l *Ledger) RemoveItem(productID int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(productID)
	if idx < 0 {
		return nil
	}
	return l.removeAt(idx)
}

// UpdateQuantity sets the line to newQuantity, reserving or releasing the
// difference. A quantity of zero or less removes the line.
func (l *Ledger) UpdateQuantity(productID, newQuantity int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(productID)
	if idx < 0 {
		return nil
	}

	if newQuantity <= 0 {
		return l.removeAt(idx)
	}

	line := l.lines[idx]
	delta := newQuantity - line.Quantity

	switch {
	case delta > 0:
		if err := l.inventory.Reserve(productID, delta); err != nil {
			if is, ok := apperrors.IsInsufficientStockError(err); ok {
				return apperrors.NewInsufficientStockError(productID, newQuantity, is.Available+line.Quantity)
			}
			return err
		}
	case delta < 0:
		if err := l.inventory.Release(productID, -delta); err != nil {
			return err
		}
	}

	l.lines[idx].Quantity = newQuantity
	return nil
}

// Clear returns every borrowed unit to the catalog and empties the cart.
func (l *Ledger) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.clearLocked()
}

// Settle hands a summary of the non-empty cart to fn and clears the cart
// only when fn succeeds. An empty cart fails with EmptyCartError.
func (l *Ledger) Settle(fn func(domain.CartSummary) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.lines) == 0 {
		return apperrors.NewEmptyCartError()
	}

	if err := fn(l.summaryLocked()); err != nil {
		return err
	}

	return l.clearLocked()
}

func (l *Ledger) Subtotal() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.summaryLocked().Subtotal
}

func (l *Ledger) Taxes() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.summaryLocked().Taxes
}

func (l *Ledger) Total() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.summaryLocked().Total
}

func (l *Ledger) Lines() []domain.LineView {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.summaryLocked().Lines
}

func (l *Ledger) State() domain.CartState {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.stateLocked()
}

// Summary returns lines and totals read under a single lock.
func (l *Ledger) Summary() domain.CartSummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.summaryLocked()
}

func (l *Ledger) indexOf(productID int) int {
	for i, line := range l.lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

func (l *Ledger) removeAt(idx int) error {
	line := l.lines[idx]
	if err := l.inventory.Release(line.ProductID, line.Quantity); err != nil {
		return err
	}
	l.lines = append(l.lines[:idx], l.lines[idx+1:]...)
	return nil
}

func (l *Ledger) clearLocked() error {
	var errs []error
	kept := l.lines[:0]
	for _, line := range l.lines {
		if err := l.inventory.Release(line.ProductID, line.Quantity); err != nil {
			errs = append(errs, err)
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		l.lines = nil
	} else {
		l.lines = kept
	}
	return errors.Join(errs...)
}

func (l *Ledger) stateLocked() domain.CartState {
	if len(l.lines) == 0 {
		return domain.CartStateEmpty
	}
	return domain.CartStatePopulated
}

func (l *Ledger) summaryLocked() domain.CartSummary {
	views := make([]domain.LineView, 0, len(l.lines))
	subtotal := decimal.Zero

	for _, line := range l.lines {
		// Catalog products are never removed, so a reserved line always resolves.
		p, err := l.inventory.Lookup(line.ProductID)
		if err != nil {
			continue
		}

		lineTotal := p.LineTotal(line.Quantity)
		subtotal = subtotal.Add(lineTotal)
		views = append(views, domain.LineView{
			ProductID:   p.ID,
			Name:        p.Name,
			UnitPrice:   p.Price,
			Quantity:    line.Quantity,
			LineTotal:   lineTotal,
			MaxQuantity: p.Stock() + line.Quantity,
		})
	}

	taxes := subtotal.Mul(l.taxRate)

	return domain.CartSummary{
		State:    l.stateLocked(),
		Lines:    views,
		Subtotal: subtotal,
		Taxes:    taxes,
		Total:    subtotal.Add(taxes),
	}
}
