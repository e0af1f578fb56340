package main

import (
	"context"
	"database/sql"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/infrastructure/logger"
	"storefront/internal/infrastructure/mysql"
	"storefront/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.UsesDatabase() {
		db, err = mysql.NewConnection(cfg.Database)
		if err != nil {
			zapLogger.Fatal("connecting to database", zap.Error(err))
		}
		defer db.Close()
		zapLogger.Info("database connected", zap.String("host", cfg.Database.Host), zap.String("name", cfg.Database.Name))

		if cfg.Invoice.Archive == config.InvoiceArchiveMySQL {
			if err := mysql.EnsureInvoiceSchema(ctx, db); err != nil {
				zapLogger.Fatal("preparing invoice archive", zap.Error(err))
			}
		}
	}

	store, err := catalog.NewCatalog(ctx, cfg.Catalog, db, zapLogger)
	if err != nil {
		zapLogger.Fatal("loading catalog", zap.Error(err))
	}

	catalogCtrl := catalog.NewModule(store, zapLogger)
	cartCtrl, ledger := cart.NewModule(store, cfg.Cart.TaxRate, zapLogger)
	checkoutCtrl := checkout.NewModule(ledger, db, cfg, zapLogger)

	router := server.NewRouter(catalogCtrl, cartCtrl, checkoutCtrl, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	zapLogger.Info("storefront ready",
		zap.Int("port", cfg.Server.Port),
		zap.String("taxRate", cfg.Cart.TaxRate.String()),
		zap.Int("invoiceStartNumber", cfg.Invoice.StartNumber),
		zap.String("invoiceArchive", cfg.Invoice.Archive),
	)

	if err := srv.Run(ctx); err != nil {
		zapLogger.Fatal("server error", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
