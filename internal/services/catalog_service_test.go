package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(filter repositories.ProductFilter) ([]models.Product, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByIDs(ids []string) (map[string]models.Product, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]models.Product), args.Error(1)
}

func (m *MockProductRepository) Categories() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) CountByName(name string) (int64, error) {
	args := m.Called(name)
	return args.Get(0).(int64), args.Error(1)
}

func TestCatalogService_ListMapsPriceBands(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo)

	expected := []models.Product{{ID: "1", Name: "Budget Widget", Price: 120.0}}
	mockRepo.On("List", mock.MatchedBy(func(filter repositories.ProductFilter) bool {
		return filter.PriceMin != nil && *filter.PriceMin == 0 &&
			filter.PriceMax != nil && *filter.PriceMax == 500 &&
			filter.Query == "widget" && filter.Category == "Electronics"
	})).Return(expected, nil).Once()

	products, err := service.List(services.CatalogFilter{
		Query:     "widget",
		Category:  "Electronics",
		PriceBand: "low",
	})
	assert.NoError(t, err)
	assert.Equal(t, expected, products)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_ListIgnoresUnknownPriceBand(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo)

	mockRepo.On("List", mock.MatchedBy(func(filter repositories.ProductFilter) bool {
		return filter.PriceMin == nil && filter.PriceMax == nil
	})).Return([]models.Product{}, nil).Once()

	_, err := service.List(services.CatalogFilter{PriceBand: "premium"})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_GetMany(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo)

	resolved := map[string]models.Product{"1": {ID: "1", Name: "Widget"}}
	mockRepo.On("GetByIDs", []string{"1", "99"}).Return(resolved, nil).Once()

	products, err := service.GetMany([]string{"1", "99"})
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Contains(t, products, "1")
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_GetNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo)

	mockRepo.On("GetByID", "99").Return(nil, fmt.Errorf("product with ID 99 not found")).Once()

	product, err := service.Get("99")
	assert.Error(t, err)
	assert.Nil(t, product)
	assert.Contains(t, err.Error(), "not found")
	mockRepo.AssertExpectations(t)
}
