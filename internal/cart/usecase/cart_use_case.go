package usecase

import (
	"go.uber.org/zap"

	"storefront/internal/domain"
	apperrors "storefront/internal/errors"
)

type Ledger interface {
	AddItem(productID, quantity int) error
	RemoveItem(productID int) error
	UpdateQuantity(productID, newQuantity int) error
	Clear() error
	Summary() domain.CartSummary
}

// CartUseCase runs shopper actions against the ledger and reports the cart
// as it stands afterwards.
type CartUseCase struct {
	ledger Ledger
	logger *zap.Logger
}

func NewCartUseCase(ledger Ledger, logger *zap.Logger) *CartUseCase {
	return &CartUseCase{
		ledger: ledger,
		logger: logger,
	}
}

func (uc *CartUseCase) Cart() domain.CartSummary {
	return uc.ledger.Summary()
}

func (uc *CartUseCase) AddItem(productID, quantity int) (domain.CartSummary, error) {
	uc.logger.Debug("add item started", zap.Int("productId", productID), zap.Int("quantity", quantity))

	if err := uc.ledger.AddItem(productID, quantity); err != nil {
		uc.logRejected("add item rejected", productID, quantity, err)
		return domain.CartSummary{}, err
	}

	summary := uc.ledger.Summary()
	uc.logger.Info("item added to cart",
		zap.Int("productId", productID),
		zap.Int("quantity", quantity),
		zap.Int("lineCount", len(summary.Lines)),
		zap.String("subtotal", summary.Subtotal.StringFixed(2)),
	)
	return summary, nil
}

func (uc *CartUseCase) UpdateQuantity(productID, newQuantity int) (domain.CartSummary, error) {
	uc.logger.Debug("update quantity started", zap.Int("productId", productID), zap.Int("quantity", newQuantity))

	if err := uc.ledger.UpdateQuantity(productID, newQuantity); err != nil {
		uc.logRejected("update quantity rejected", productID, newQuantity, err)
		return domain.CartSummary{}, err
	}

	summary := uc.ledger.Summary()
	uc.logger.Info("cart quantity updated",
		zap.Int("productId", productID),
		zap.Int("quantity", newQuantity),
		zap.String("state", string(summary.State)),
		zap.String("subtotal", summary.Subtotal.StringFixed(2)),
	)
	return summary, nil
}

func (uc *CartUseCase) RemoveItem(productID int) (domain.CartSummary, error) {
	if err := uc.ledger.RemoveItem(productID); err != nil {
		uc.logger.Error("remove item failed", zap.Int("productId", productID), zap.Error(err))
		return domain.CartSummary{}, err
	}

	summary := uc.ledger.Summary()
	uc.logger.Info("item removed from cart",
		zap.Int("productId", productID),
		zap.String("state", string(summary.State)),
	)
	return summary, nil
}

func (uc *CartUseCase) Clear() (domain.CartSummary, error) {
	if err := uc.ledger.Clear(); err != nil {
		uc.logger.Error("clear cart failed", zap.Error(err))
		return domain.CartSummary{}, err
	}

	uc.logger.Info("cart cleared")
	return uc.ledger.Summary(), nil
}

// Expected shopper mistakes are logged at warn; anything else is an error.
func (uc *CartUseCase) logRejected(msg string, productID, quantity int, err error) {
	fields := []zap.Field{zap.Int("productId", productID), zap.Int("quantity", quantity), zap.Error(err)}

	if _, ok := apperrors.IsInsufficientStockError(err); ok {
		uc.logger.Warn(msg, fields...)
		return
	}
	if _, ok := apperrors.IsInvalidQuantityError(err); ok {
		uc.logger.Warn(msg, fields...)
		return
	}
	if _, ok := apperrors.IsNotFoundError(err); ok {
		uc.logger.Warn(msg, fields...)
		return
	}
	uc.logger.Error(msg, fields...)
}
