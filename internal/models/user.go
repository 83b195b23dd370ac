package models

import "gorm.io/gorm"

// User represents a shopper profile. Identity is session-scoped; a
// user record exists only so orders can be attributed on the dashboard.
// Email is stored trimmed and lower-cased.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" gorm:"type:varchar(255)" validate:"required,min=1,max=255"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
