package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/dto"
	apperrors "storefront/internal/errors"
)

type CartUseCase interface {
	Cart() domain.CartSummary
	AddItem(productID, quantity int) (domain.CartSummary, error)
	UpdateQuantity(productID, newQuantity int) (domain.CartSummary, error)
	RemoveItem(productID int) (domain.CartSummary, error)
	Clear() (domain.CartSummary, error)
}

type CartController struct {
	useCase CartUseCase
	logger  *zap.Logger
}

func NewCartController(useCase CartUseCase, logger *zap.Logger) *CartController {
	return &CartController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	c.writeJSON(w, http.StatusOK, dto.NewCartResponse(traceID, c.useCase.Cart()))
}

func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	var details []apperrors.ValidationDetail
	productID, ok := parseWholeNumber(req.ProductID)
	if !ok || productID <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must be a positive integer",
		})
	}
	quantity, ok := parseWholeNumber(req.Quantity)
	if !ok || quantity <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be a positive whole number",
		})
	}
	if len(details) > 0 {
		c.writeValidationError(w, traceID, "validation failed", details...)
		return
	}

	summary, err := c.useCase.AddItem(productID, quantity)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewCartResponse(traceID, summary))
}

func (c *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	productID, ok := c.productIDFromPath(w, r, traceID)
	if !ok {
		return
	}

	var req dto.UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	// Zero and negative quantities are valid here: they remove the line.
	quantity, ok := parseWholeNumber(req.Quantity)
	if !ok {
		c.writeValidationError(w, traceID, "validation failed", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be a whole number",
		})
		return
	}

	summary, err := c.useCase.UpdateQuantity(productID, quantity)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewCartResponse(traceID, summary))
}

func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	productID, ok := c.productIDFromPath(w, r, traceID)
	if !ok {
		return
	}

	summary, err := c.useCase.RemoveItem(productID)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewCartResponse(traceID, summary))
}

func (c *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	summary, err := c.useCase.Clear()
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewCartResponse(traceID, summary))
}

func (c *CartController) productIDFromPath(w http.ResponseWriter, r *http.Request, traceID string) (int, bool) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil || productID <= 0 {
		c.writeValidationError(w, traceID, "invalid productId", apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must be a positive integer",
		})
		return 0, false
	}
	return productID, true
}

func parseWholeNumber(n json.Number) (int, bool) {
	if n == "" {
		return 0, false
	}
	v, err := strconv.Atoi(n.String())
	if err != nil {
		return 0, false
	}
	return v, true
}

func (c *CartController) handleUseCaseError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, dto.NewErrorResponse(traceID, http.StatusNotFound, "NOT_FOUND", err.Error()))
		return
	}

	if _, ok := apperrors.IsInvalidQuantityError(err); ok {
		c.writeJSON(w, http.StatusBadRequest, dto.NewErrorResponse(traceID, http.StatusBadRequest, "INVALID_QUANTITY", err.Error()))
		return
	}

	if _, ok := apperrors.IsInsufficientStockError(err); ok {
		c.writeJSON(w, http.StatusConflict, dto.NewErrorResponse(traceID, http.StatusConflict, "INSUFFICIENT_STOCK", err.Error()))
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, dto.NewErrorResponse(traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred"))
}

func (c *CartController) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, dto.NewErrorResponse(traceID, http.StatusBadRequest, "VALIDATION_ERROR", message, details...))
}

func (c *CartController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
