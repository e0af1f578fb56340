package cart

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/cart/controller"
	"storefront/internal/cart/service"
	"storefront/internal/cart/usecase"
)

// NewModule builds the cart on top of inventory. The ledger is returned as
// well because checkout settles against it.
func NewModule(inventory service.Inventory, taxRate decimal.Decimal, logger *zap.Logger) (*controller.CartController, *service.Ledger) {
	ledger := service.NewLedger(inventory, taxRate)
	uc := usecase.NewCartUseCase(ledger, logger)
	return controller.NewCartController(uc, logger), ledger
}
