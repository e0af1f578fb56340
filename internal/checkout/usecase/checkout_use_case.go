package usecase

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"storefront/internal/domain"
)

type CheckoutService interface {
	Checkout(ctx context.Context) (domain.Invoice, error)
	LastInvoice() (domain.Invoice, error)
	Invoice(ctx context.Context, id string) (domain.Invoice, error)
	Invoices(ctx context.Context) ([]domain.Invoice, error)
}

type CheckoutUseCase struct {
	service          CheckoutService
	logger           *zap.Logger
	maxRetryAttempts int
	sleep            func(time.Duration)
}

func NewCheckoutUseCase(service CheckoutService, logger *zap.Logger, maxRetryAttempts int) *CheckoutUseCase {
	if maxRetryAttempts < 1 {
		maxRetryAttempts = 1
	}
	return &CheckoutUseCase{
		service:          service,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
		sleep:            time.Sleep,
	}
}

// Checkout issues an invoice for the current cart. A failed archive write
// leaves the cart untouched, so transient MySQL lock errors are retried.
func (uc *CheckoutUseCase) Checkout(ctx context.Context) (domain.Invoice, error) {
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	var err error
	for attempt := 1; attempt <= uc.maxRetryAttempts; attempt++ {
		var invoice domain.Invoice
		invoice, err = uc.service.Checkout(ctx)
		if err == nil {
			return invoice, nil
		}

		if !isRetryableArchiveError(err) || attempt == uc.maxRetryAttempts {
			return domain.Invoice{}, err
		}

		base := backoffs[min(attempt, len(backoffs)-1)]
		// ±20% jitter
		jitter := time.Duration(float64(base) * (rand.Float64()*0.4 - 0.2))
		uc.logger.Warn("invoice archive busy, retrying",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", uc.maxRetryAttempts),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return domain.Invoice{}, ctx.Err()
		default:
		}
		uc.sleep(base + jitter)
	}

	return domain.Invoice{}, err
}

func (uc *CheckoutUseCase) LastInvoice() (domain.Invoice, error) {
	return uc.service.LastInvoice()
}

func (uc *CheckoutUseCase) Invoice(ctx context.Context, id string) (domain.Invoice, error) {
	return uc.service.Invoice(ctx, id)
}

func (uc *CheckoutUseCase) Invoices(ctx context.Context) ([]domain.Invoice, error) {
	invoices, err := uc.service.Invoices(ctx)
	if err != nil {
		uc.logger.Error("listing invoices failed", zap.Error(err))
		return nil, err
	}
	return invoices, nil
}

// isRetryableArchiveError reports MySQL deadlocks (1213) and lock wait
// timeouts (1205).
func isRetryableArchiveError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
