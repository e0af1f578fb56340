package catalog

import (
	"context"

	"storefront/internal/domain"
)

type BrowseUseCase interface {
	ListProducts() []ProductDTO
	GetProduct(id int) (ProductDTO, error)
	SearchProducts(ids []int) SearchProductsResponse
}

type Service interface {
	GetProductsByIDs(ids []int) (found []domain.Product, notFoundIDs []int)
}

type Reader interface {
	Lookup(id int) (domain.Product, error)
	Products() []domain.Product
}

// Repository is a persistent source for the catalog seed.
type Repository interface {
	FindActive(ctx context.Context) ([]domain.Product, error)
}
