package commons

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"go.yaml.in/yaml/v3"

	"storefront/internal/domain"
)

type catalogSeed struct {
	Products []productSeed `yaml:"products"`
}

type productSeed struct {
	ID    int    `yaml:"id"`
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
	Stock int    `yaml:"stock"`
}

// LoadCatalogSeed reads the product list from a YAML file of the form
//
//	products:
//	  - id: 1
//	    name: Laptop Gaming
//	    price: "1200.00"
//	    stock: 10
func LoadCatalogSeed(path string) ([]domain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	return ParseCatalogSeed(data)
}

func ParseCatalogSeed(data []byte) ([]domain.Product, error) {
	var seed catalogSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}

	products := make([]domain.Product, 0, len(seed.Products))
	for i, s := range seed.Products {
		price, err := decimal.NewFromString(s.Price)
		if err != nil {
			return nil, fmt.Errorf("products[%d].price %q: %w", i, s.Price, err)
		}

		p, err := domain.NewProduct(s.ID, s.Name, price, s.Stock)
		if err != nil {
			return nil, fmt.Errorf("products[%d]: %w", i, err)
		}
		products = append(products, p)
	}

	return products, nil
}
