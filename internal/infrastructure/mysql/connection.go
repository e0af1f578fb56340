package mysql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"storefront/internal/config"
)

func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.QueryTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// EnsureInvoiceSchema creates the invoice archive tables when missing.
func EnsureInvoiceSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range []string{CreateInvoicesTable, CreateInvoiceLinesTable} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating invoice schema: %w", err)
		}
	}
	return nil
}

const CreateInvoicesTable = `
	CREATE TABLE IF NOT EXISTS Invoices (
		id CHAR(36) NOT NULL PRIMARY KEY,
		number INT NOT NULL,
		issuedAt DATETIME(6) NOT NULL,
		subtotal DECIMAL(14,4) NOT NULL,
		taxes DECIMAL(14,4) NOT NULL,
		total DECIMAL(14,4) NOT NULL,
		INDEX idx_issued (issuedAt)
	)`

const CreateInvoiceLinesTable = `
	CREATE TABLE IF NOT EXISTS InvoiceLines (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		invoiceId CHAR(36) NOT NULL,
		position INT NOT NULL,
		productId INT NOT NULL,
		name VARCHAR(255) NOT NULL,
		quantity INT NOT NULL,
		unitPrice DECIMAL(14,4) NOT NULL,
		lineTotal DECIMAL(14,4) NOT NULL,
		FOREIGN KEY (invoiceId) REFERENCES Invoices(id) ON DELETE CASCADE,
		INDEX idx_invoice (invoiceId)
	)`
