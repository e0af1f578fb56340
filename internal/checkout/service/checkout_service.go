package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/domain"
	apperrors "storefront/internal/errors"
)

type Ledger interface {
	Settle(fn func(domain.CartSummary) error) error
}

type InvoiceRepository interface {
	Save(ctx context.Context, invoice domain.Invoice) error
	FindByID(ctx context.Context, id string) (domain.Invoice, error)
	FindAll(ctx context.Context) ([]domain.Invoice, error)
}

type Option func(*CheckoutService)

// WithClock replaces time.Now as the source of invoice timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *CheckoutService) {
		s.now = now
	}
}

// WithIDGenerator replaces the random UUID used as invoice id.
func WithIDGenerator(newID func() string) Option {
	return func(s *CheckoutService) {
		s.newID = newID
	}
}

// CheckoutService turns the cart into invoices. Invoice numbers are handed out
// one after the other starting right above the configured start number; a
// number is only consumed once its invoice is archived.
type CheckoutService struct {
	mu            sync.Mutex
	ledger        Ledger
	invoices      InvoiceRepository
	logger        *zap.Logger
	now           func() time.Time
	newID         func() string
	currentNumber int
	last          *domain.Invoice
}

func NewCheckoutService(
	ledger Ledger,
	invoices InvoiceRepository,
	logger *zap.Logger,
	startNumber int,
	opts ...Option,
) *CheckoutService {
	s := &CheckoutService{
		ledger:        ledger,
		invoices:      invoices,
		logger:        logger,
		now:           time.Now,
		newID:         uuid.NewString,
		currentNumber: startNumber,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CheckoutService) Checkout(ctx context.Context) (domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var issued domain.Invoice
	err := s.ledger.Settle(func(summary domain.CartSummary) error {
		number := s.currentNumber + 1
		invoice := domain.InvoiceFromSummary(s.newID(), number, s.now(), summary)

		if err := s.invoices.Save(ctx, invoice); err != nil {
			return apperrors.NewInternalError("archiving invoice", err)
		}

		s.currentNumber = number
		issued = invoice
		return nil
	})

	if issued.ID != "" {
		s.last = &issued
	}

	if err != nil {
		if _, ok := apperrors.IsEmptyCartError(err); ok {
			s.logger.Info("checkout rejected: cart is empty")
			return domain.Invoice{}, err
		}
		s.logger.Error("checkout failed", zap.Int("invoiceNumber", s.currentNumber+1), zap.Error(err))
		return domain.Invoice{}, err
	}

	s.logger.Info("invoice issued",
		zap.String("invoiceId", issued.ID),
		zap.Int("invoiceNumber", issued.Number),
		zap.Int("lineCount", len(issued.Lines())),
		zap.String("total", issued.Total.StringFixed(2)),
	)

	return issued, nil
}

// LastInvoice returns the most recent invoice issued by this process.
func (s *CheckoutService) LastInvoice() (domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil {
		return domain.Invoice{}, apperrors.NewNotFoundError("no invoice has been issued yet")
	}
	return *s.last, nil
}

func (s *CheckoutService) Invoice(ctx context.Context, id string) (domain.Invoice, error) {
	return s.invoices.FindByID(ctx, id)
}

func (s *CheckoutService) Invoices(ctx context.Context) ([]domain.Invoice, error) {
	return s.invoices.FindAll(ctx)
}
