package checkout

import (
	"database/sql"

	"go.uber.org/zap"

	"storefront/internal/checkout/controller"
	"storefront/internal/checkout/repository"
	"storefront/internal/checkout/service"
	"storefront/internal/checkout/usecase"
	"storefront/internal/config"
)

// NewModule wires checkout against the ledger. db is required only when the
// invoice archive is mysql.
func NewModule(ledger service.Ledger, db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.CheckoutController {
	var invoiceRepo service.InvoiceRepository
	if cfg.Invoice.Archive == config.InvoiceArchiveMySQL {
		invoiceRepo = repository.NewMySQLInvoiceRepository(db, cfg.Database.QueryTimeout)
	} else {
		invoiceRepo = repository.NewMemoryInvoiceRepository()
	}

	checkoutSvc := service.NewCheckoutService(ledger, invoiceRepo, logger, cfg.Invoice.StartNumber)
	uc := usecase.NewCheckoutUseCase(checkoutSvc, logger, cfg.Invoice.MaxRetryAttempts)
	return controller.NewCheckoutController(uc, logger)
}
