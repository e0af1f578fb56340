package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// MySQLRepository reads the catalog seed from the Product table. Stock
// changes made by the cart are never written back.
type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

func (r *MySQLRepository) FindActive(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, price, stock
		FROM Product
		WHERE isActive = 1
		  AND isDeleted = 0
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var (
			id    int
			name  string
			price decimal.Decimal
			stock sql.NullInt64
		)
		if err := rows.Scan(&id, &name, &price, &stock); err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}

		p, err := domain.NewProduct(id, name, price, int(stock.Int64))
		if err != nil {
			return nil, fmt.Errorf("mapping product %d: %w", id, err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}
