package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cartservice "storefront/internal/cart/service"
	"storefront/internal/catalog"
	"storefront/internal/checkout/repository"
	"storefront/internal/domain"
	apperrors "storefront/internal/errors"
)

// Mock implementations
type mockLedger struct {
	SettleFunc func(fn func(domain.CartSummary) error) error
}

func (m *mockLedger) Settle(fn func(domain.CartSummary) error) error {
	return m.SettleFunc(fn)
}

type mockInvoiceRepository struct {
	SaveFunc     func(ctx context.Context, invoice domain.Invoice) error
	FindByIDFunc func(ctx context.Context, id string) (domain.Invoice, error)
	FindAllFunc  func(ctx context.Context) ([]domain.Invoice, error)
}

func (m *mockInvoiceRepository) Save(ctx context.Context, invoice domain.Invoice) error {
	return m.SaveFunc(ctx, invoice)
}

func (m *mockInvoiceRepository) FindByID(ctx context.Context, id string) (domain.Invoice, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockInvoiceRepository) FindAll(ctx context.Context) ([]domain.Invoice, error) {
	return m.FindAllFunc(ctx)
}

var fixedNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("inv-%d", n)
	}
}

func newStore(t *testing.T) (*catalog.Catalog, *cartservice.Ledger) {
	t.Helper()
	c, err := catalog.New(catalog.DefaultProducts()...)
	require.NoError(t, err)
	return c, cartservice.NewLedger(c, decimal.RequireFromString("0.16"))
}

func stockOf(t *testing.T, c *catalog.Catalog, id int) int {
	t.Helper()
	p, err := c.Lookup(id)
	require.NoError(t, err)
	return p.Stock()
}

// Tests

func TestCheckout_EmptyCart(t *testing.T) {
	_, ledger := newStore(t)
	repo := repository.NewMemoryInvoiceRepository()
	svc := NewCheckoutService(ledger, repo, zap.NewNop(), 1000)

	_, err := svc.Checkout(context.Background())

	_, ok := apperrors.IsEmptyCartError(err)
	assert.True(t, ok)

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = svc.LastInvoice()
	_, ok = apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestCheckout_TwoLines(t *testing.T) {
	c, ledger := newStore(t)
	repo := repository.NewMemoryInvoiceRepository()
	svc := NewCheckoutService(ledger, repo, zap.NewNop(), 1000,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(sequentialIDs()),
	)

	require.NoError(t, ledger.AddItem(1, 1))
	require.NoError(t, ledger.AddItem(4, 2))

	invoice, err := svc.Checkout(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "inv-1", invoice.ID)
	assert.Equal(t, 1001, invoice.Number)
	assert.Equal(t, fixedNow, invoice.IssuedAt)

	lines := invoice.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].ProductID)
	assert.Equal(t, "Laptop Gaming", lines[0].Name)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, "1200.00", lines[0].LineTotal.StringFixed(2))
	assert.Equal(t, 4, lines[1].ProductID)
	assert.Equal(t, 2, lines[1].Quantity)
	assert.Equal(t, "160.00", lines[1].LineTotal.StringFixed(2))

	assert.Equal(t, "1360.00", invoice.Subtotal.StringFixed(2))
	assert.Equal(t, "217.60", invoice.Taxes.StringFixed(2))
	assert.Equal(t, "1577.60", invoice.Total.StringFixed(2))

	assert.Equal(t, domain.CartStateEmpty, ledger.State())
	assert.Equal(t, 10, stockOf(t, c, 1))
	assert.Equal(t, 20, stockOf(t, c, 4))

	archived, err := svc.Invoice(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, 1001, archived.Number)

	last, err := svc.LastInvoice()
	require.NoError(t, err)
	assert.Equal(t, invoice.ID, last.ID)
}

func TestCheckout_NumbersIncrease(t *testing.T) {
	_, ledger := newStore(t)
	svc := NewCheckoutService(ledger, repository.NewMemoryInvoiceRepository(), zap.NewNop(), 1000)

	require.NoError(t, ledger.AddItem(7, 1))
	first, err := svc.Checkout(context.Background())
	require.NoError(t, err)

	require.NoError(t, ledger.AddItem(3, 2))
	second, err := svc.Checkout(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1001, first.Number)
	assert.Equal(t, 1002, second.Number)
	assert.NotEqual(t, first.ID, second.ID)

	all, err := svc.Invoices(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
}

func TestCheckout_CustomStartNumber(t *testing.T) {
	_, ledger := newStore(t)
	svc := NewCheckoutService(ledger, repository.NewMemoryInvoiceRepository(), zap.NewNop(), 5000)

	require.NoError(t, ledger.AddItem(2, 1))
	invoice, err := svc.Checkout(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5001, invoice.Number)
}

func TestCheckout_ArchiveFailureKeepsCart(t *testing.T) {
	c, ledger := newStore(t)
	saveErr := errors.New("connection refused")
	failing := true
	repo := &mockInvoiceRepository{
		SaveFunc: func(ctx context.Context, invoice domain.Invoice) error {
			if failing {
				return saveErr
			}
			return nil
		},
	}
	svc := NewCheckoutService(ledger, repo, zap.NewNop(), 1000)

	require.NoError(t, ledger.AddItem(5, 3))

	_, err := svc.Checkout(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, saveErr))

	var internalErr *apperrors.InternalError
	assert.True(t, errors.As(err, &internalErr))

	assert.Equal(t, domain.CartStatePopulated, ledger.State())
	assert.Equal(t, 9, stockOf(t, c, 5))

	_, err = svc.LastInvoice()
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)

	failing = false
	invoice, err := svc.Checkout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1001, invoice.Number)
	assert.Equal(t, 12, stockOf(t, c, 5))
}

func TestCheckout_PassesSummaryThrough(t *testing.T) {
	summary := domain.CartSummary{
		State: domain.CartStatePopulated,
		Lines: []domain.LineView{
			{ProductID: 8, Name: "Impresora Multifuncional", UnitPrice: decimal.NewFromInt(200), Quantity: 1, LineTotal: decimal.NewFromInt(200), MaxQuantity: 5},
		},
		Subtotal: decimal.NewFromInt(200),
		Taxes:    decimal.NewFromInt(32),
		Total:    decimal.NewFromInt(232),
	}
	ledger := &mockLedger{
		SettleFunc: func(fn func(domain.CartSummary) error) error {
			return fn(summary)
		},
	}
	var saved domain.Invoice
	repo := &mockInvoiceRepository{
		SaveFunc: func(ctx context.Context, invoice domain.Invoice) error {
			saved = invoice
			return nil
		},
	}
	svc := NewCheckoutService(ledger, repo, zap.NewNop(), 1000, WithIDGenerator(func() string { return "fixed" }))

	invoice, err := svc.Checkout(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "fixed", saved.ID)
	assert.Equal(t, invoice.Number, saved.Number)
	assert.True(t, decimal.NewFromInt(232).Equal(invoice.Total))
	require.Len(t, invoice.Lines(), 1)
	assert.Equal(t, "Impresora Multifuncional", invoice.Lines()[0].Name)
}

func TestCheckoutService_InvoiceNotFound(t *testing.T) {
	_, ledger := newStore(t)
	svc := NewCheckoutService(ledger, repository.NewMemoryInvoiceRepository(), zap.NewNop(), 1000)

	_, err := svc.Invoice(context.Background(), "nope")

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
