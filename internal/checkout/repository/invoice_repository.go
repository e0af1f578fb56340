package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/errors"
)

// MySQLInvoiceRepository archives issued invoices in the Invoices and
// InvoiceLines tables.
type MySQLInvoiceRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewMySQLInvoiceRepository(db *sql.DB, timeout time.Duration) *MySQLInvoiceRepository {
	return &MySQLInvoiceRepository{db: db, timeout: timeout}
}

func (r *MySQLInvoiceRepository) Save(ctx context.Context, invoice domain.Invoice) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning invoice transaction: %w", err)
	}
	// Rollback after Commit is a no-op.
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO Invoices (id, number, issuedAt, subtotal, taxes, total) VALUES (?, ?, ?, ?, ?, ?)`,
		invoice.ID, invoice.Number, invoice.IssuedAt.UTC(), invoice.Subtotal, invoice.Taxes, invoice.Total,
	)
	if err != nil {
		return fmt.Errorf("inserting invoice: %w", err)
	}

	for i, line := range invoice.Lines() {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO InvoiceLines (invoiceId, position, productId, name, quantity, unitPrice, lineTotal) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			invoice.ID, i, line.ProductID, line.Name, line.Quantity, line.UnitPrice, line.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("inserting invoice line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing invoice: %w", err)
	}

	return nil
}

func (r *MySQLInvoiceRepository) FindByID(ctx context.Context, id string) (domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT id, number, issuedAt, subtotal, taxes, total
		FROM Invoices
		WHERE id = ?
	`

	h, err := scanHeader(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return domain.Invoice{}, errors.NewNotFoundError(fmt.Sprintf("invoice with id %s not found", id))
	}
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("querying invoice by id: %w", err)
	}

	lines, err := r.findLines(ctx, h.id)
	if err != nil {
		return domain.Invoice{}, err
	}

	return h.invoice(lines), nil
}

func (r *MySQLInvoiceRepository) FindAll(ctx context.Context) ([]domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT id, number, issuedAt, subtotal, taxes, total
		FROM Invoices
		ORDER BY issuedAt ASC, number ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying invoices: %w", err)
	}

	var headers []invoiceHeader
	for rows.Next() {
		h, err := scanHeader(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning invoice row: %w", err)
		}
		headers = append(headers, h)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}
	rows.Close()

	invoices := make([]domain.Invoice, 0, len(headers))
	for _, h := range headers {
		lines, err := r.findLines(ctx, h.id)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, h.invoice(lines))
	}

	return invoices, nil
}

func (r *MySQLInvoiceRepository) findLines(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error) {
	query := `
		SELECT productId, name, quantity, unitPrice, lineTotal
		FROM InvoiceLines
		WHERE invoiceId = ?
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("querying invoice lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.InvoiceLine
	for rows.Next() {
		var l domain.InvoiceLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.Quantity, &l.UnitPrice, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scanning invoice line row: %w", err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice line rows: %w", err)
	}

	return lines, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

type invoiceHeader struct {
	id       string
	number   int
	issuedAt time.Time
	subtotal decimal.Decimal
	taxes    decimal.Decimal
	total    decimal.Decimal
}

func scanHeader(row rowScanner) (invoiceHeader, error) {
	var h invoiceHeader
	err := row.Scan(&h.id, &h.number, &h.issuedAt, &h.subtotal, &h.taxes, &h.total)
	return h, err
}

func (h invoiceHeader) invoice(lines []domain.InvoiceLine) domain.Invoice {
	return domain.NewInvoice(h.id, h.number, h.issuedAt, lines, h.subtotal, h.taxes, h.total)
}
