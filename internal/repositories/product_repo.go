package repositories

import (
	"storefront/internal/models"
)

// ProductFilter narrows a catalog listing. Zero values mean "no
// constraint" for Query and Category; nil price bounds are open-ended.
type ProductFilter struct {
	Query    string
	Category string
	PriceMin *float64
	PriceMax *float64
}

// ProductRepository defines the interface for catalog data access.
type ProductRepository interface {
	List(filter ProductFilter) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	// GetByIDs resolves a batch of product IDs; IDs that do not
	// resolve are simply absent from the returned map.
	GetByIDs(ids []string) (map[string]models.Product, error)
	Categories() ([]string, error)
	Create(product *models.Product) error
	CountByName(name string) (int64, error)
}
