package catalog

import (
	"storefront/internal/domain"
	"storefront/internal/dto"
)

type browseUseCase struct {
	reader  Reader
	service Service
}

func NewBrowseUseCase(reader Reader, service Service) BrowseUseCase {
	return &browseUseCase{reader: reader, service: service}
}

func (uc *browseUseCase) ListProducts() []ProductDTO {
	return toProductDTOs(uc.reader.Products())
}

func (uc *browseUseCase) GetProduct(id int) (ProductDTO, error) {
	p, err := uc.reader.Lookup(id)
	if err != nil {
		return ProductDTO{}, err
	}
	return toProductDTO(p), nil
}

func (uc *browseUseCase) SearchProducts(ids []int) SearchProductsResponse {
	found, notFoundIDs := uc.service.GetProductsByIDs(ids)

	if notFoundIDs == nil {
		notFoundIDs = []int{}
	}

	return SearchProductsResponse{
		Products: toProductDTOs(found),
		NotFound: notFoundIDs,
	}
}

func toProductDTOs(products []domain.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toProductDTO(p))
	}
	return out
}

func toProductDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:       p.ID,
		Name:     p.Name,
		Price:    dto.Money(p.Price),
		Stock:    p.Stock(),
		HasStock: p.Stock() > 0,
	}
}
