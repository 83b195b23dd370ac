package services

import (
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// Price bands the landing page filter offers. Bounds are inclusive.
var priceBands = map[string][2]float64{
	"low":  {0, 500},
	"mid":  {500, 1000},
	"high": {1000, 5000},
}

// CatalogFilter carries the landing page's query parameters. An
// unknown price band is ignored.
type CatalogFilter struct {
	Query     string
	Category  string
	PriceBand string
}

// CatalogService handles read-only access to the product catalog.
type CatalogService struct {
	repo repositories.ProductRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// List retrieves the products matching the filter.
func (s *CatalogService) List(filter CatalogFilter) ([]models.Product, error) {
	repoFilter := repositories.ProductFilter{
		Query:    filter.Query,
		Category: filter.Category,
	}
	if band, ok := priceBands[filter.PriceBand]; ok {
		minPrice, maxPrice := band[0], band[1]
		repoFilter.PriceMin = &minPrice
		repoFilter.PriceMax = &maxPrice
	}
	return s.repo.List(repoFilter)
}

// Categories returns the distinct product categories, sorted.
func (s *CatalogService) Categories() ([]string, error) {
	return s.repo.Categories()
}

// Get retrieves a single product by its ID.
func (s *CatalogService) Get(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetMany resolves a batch of product IDs; unresolvable IDs are absent
// from the result.
func (s *CatalogService) GetMany(ids []string) (map[string]models.Product, error) {
	return s.repo.GetByIDs(ids)
}
