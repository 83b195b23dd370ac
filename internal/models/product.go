package models

import "gorm.io/gorm"

// Product represents a catalog entry. The checkout workflow treats
// products as read-only: prices are authoritative at lookup time and
// get snapshotted into order items.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string  `json:"name" gorm:"type:varchar(255)" validate:"required,min=3,max=255"`
	Description string  `json:"description" gorm:"type:varchar(1000)" validate:"omitempty,max=1000"`
	Price       float64 `json:"price" validate:"required,gte=0"`
	ImageURL    string  `json:"image_url" gorm:"type:varchar(1000)"`
	Category    string  `json:"category" gorm:"type:varchar(100);index"`
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
