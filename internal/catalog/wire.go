package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"storefront/internal/catalog/repository"
	"storefront/internal/commons"
	"storefront/internal/config"
	"storefront/internal/domain"
)

// NewCatalog seeds a catalog from the configured source. db is only used by
// the mysql source and may be nil otherwise.
func NewCatalog(ctx context.Context, cfg config.CatalogConfig, db *sql.DB, logger *zap.Logger) (*Catalog, error) {
	var repo Repository
	if db != nil {
		repo = repository.NewMySQLRepository(db)
	}

	products, err := loadProducts(ctx, cfg, repo)
	if err != nil {
		return nil, err
	}

	c, err := New(products...)
	if err != nil {
		return nil, err
	}

	logger.Info("catalog loaded", zap.String("source", cfg.Source), zap.Int("productCount", len(products)))
	return c, nil
}

func loadProducts(ctx context.Context, cfg config.CatalogConfig, repo Repository) ([]domain.Product, error) {
	switch cfg.Source {
	case config.CatalogSourceFile:
		return commons.LoadCatalogSeed(cfg.File)
	case config.CatalogSourceMySQL:
		if repo == nil {
			return nil, fmt.Errorf("catalog source %q needs a database connection", cfg.Source)
		}
		return repo.FindActive(ctx)
	case config.CatalogSourceDefault, "":
		return DefaultProducts(), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}

func NewModule(reader Reader, logger *zap.Logger) *Controller {
	svc := NewService(reader)
	uc := NewBrowseUseCase(reader, svc)
	return NewController(uc, logger)
}
