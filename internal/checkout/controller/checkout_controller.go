package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/dto"
	apperrors "storefront/internal/errors"
)

type CheckoutUseCase interface {
	Checkout(ctx context.Context) (domain.Invoice, error)
	LastInvoice() (domain.Invoice, error)
	Invoice(ctx context.Context, id string) (domain.Invoice, error)
	Invoices(ctx context.Context) ([]domain.Invoice, error)
}

type CheckoutController struct {
	useCase CheckoutUseCase
	logger  *zap.Logger
}

func NewCheckoutController(useCase CheckoutUseCase, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *CheckoutController) Checkout(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	invoice, err := c.useCase.Checkout(r.Context())
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.NewInvoiceResponse(traceID, invoice))
}

func (c *CheckoutController) ListInvoices(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	invoices, err := c.useCase.Invoices(r.Context())
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	resp := dto.InvoiceListResponse{
		TraceID:  traceID,
		Invoices: make([]dto.InvoiceResponse, len(invoices)),
	}
	for i, invoice := range invoices {
		resp.Invoices[i] = dto.NewInvoiceResponse(traceID, invoice)
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *CheckoutController) LastInvoice(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	invoice, err := c.useCase.LastInvoice()
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewInvoiceResponse(traceID, invoice))
}

func (c *CheckoutController) GetInvoice(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	invoiceID := chi.URLParam(r, "invoiceId")
	if _, err := uuid.Parse(invoiceID); err != nil {
		c.writeJSON(w, http.StatusBadRequest, dto.NewErrorResponse(traceID, http.StatusBadRequest, "VALIDATION_ERROR", "invalid invoiceId", apperrors.ValidationDetail{
			Field:   "invoiceId",
			Message: "invoiceId must be a UUID",
		}))
		return
	}

	invoice, err := c.useCase.Invoice(r.Context(), invoiceID)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewInvoiceResponse(traceID, invoice))
}

func (c *CheckoutController) handleUseCaseError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if _, ok := apperrors.IsEmptyCartError(err); ok {
		c.writeJSON(w, http.StatusConflict, dto.NewErrorResponse(traceID, http.StatusConflict, "EMPTY_CART", err.Error()))
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, dto.NewErrorResponse(traceID, http.StatusNotFound, "NOT_FOUND", err.Error()))
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, dto.NewErrorResponse(traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred"))
}

func (c *CheckoutController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
