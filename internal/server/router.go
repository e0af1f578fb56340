package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	cartctrl "storefront/internal/cart/controller"
	"storefront/internal/catalog"
	checkoutctrl "storefront/internal/checkout/controller"
)

func NewRouter(
	catalogCtrl *catalog.Controller,
	cartCtrl *cartctrl.CartController,
	checkoutCtrl *checkoutctrl.CheckoutController,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Recoverer sits inside requestLogger so recovered panics are logged as 500s.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", healthCheck)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", catalogCtrl.HandleListProducts)
		r.Post("/search", catalogCtrl.HandleSearchProducts)
		r.Get("/{productId}", catalogCtrl.HandleGetProduct)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", cartCtrl.GetCart)
		r.Delete("/", cartCtrl.ClearCart)
		r.Post("/items", cartCtrl.AddItem)
		r.Put("/items/{productId}", cartCtrl.UpdateQuantity)
		r.Delete("/items/{productId}", cartCtrl.RemoveItem)
	})

	r.Post("/checkout", checkoutCtrl.Checkout)

	r.Route("/invoices", func(r chi.Router) {
		r.Get("/", checkoutCtrl.ListInvoices)
		r.Get("/last", checkoutCtrl.LastInvoice)
		r.Get("/{invoiceId}", checkoutCtrl.GetInvoice)
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := []zap.Field{
				zap.String("requestId", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			}

			switch {
			case status >= http.StatusInternalServerError:
				logger.Error("request completed", fields...)
			case status >= http.StatusBadRequest:
				logger.Warn("request completed", fields...)
			default:
				logger.Info("request completed", fields...)
			}
		})
	}
}
