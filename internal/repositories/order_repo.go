package repositories

import (
	"storefront/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create persists the order together with its items in one
	// transaction: either all rows commit or none do.
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	UpdateStatus(id string, status string) error
	// ListByUser returns the user's orders, newest first, with items.
	ListByUser(userID string) ([]models.Order, error)
}
