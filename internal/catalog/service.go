package catalog

import (
	"storefront/internal/domain"
)

type productService struct {
	reader Reader
}

func NewService(reader Reader) Service {
	return &productService{reader: reader}
}

func (s *productService) GetProductsByIDs(ids []int) ([]domain.Product, []int) {
	var found []domain.Product
	var notFoundIDs []int
	for _, id := range ids {
		p, err := s.reader.Lookup(id)
		if err != nil {
			notFoundIDs = append(notFoundIDs, id)
			continue
		}
		found = append(found, p)
	}

	return found, notFoundIDs
}
