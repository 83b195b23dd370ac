package models

import "time"

// Order statuses. An order is created exactly once per checkout and
// transitions pending -> paid at most once.
const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

// OrderItem is a frozen line snapshot within an order: quantity, unit
// price and line total as captured at checkout time. It references the
// product by ID only, so later product changes never alter the order.
type OrderItem struct {
	ID        uint    `json:"-" gorm:"primaryKey"`
	OrderID   string  `json:"-" gorm:"type:varchar(36);index;not null"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36);index;not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	UnitPrice float64 `json:"unit_price" gorm:"not null"`
	LineTotal float64 `json:"line_total" gorm:"not null"`
}

// Order represents a committed checkout. UserID is nil for anonymous
// checkouts. TotalAmount is the sum of the item line totals at commit
// time.
type Order struct {
	ID          string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      *string     `json:"user_id,omitempty" gorm:"type:varchar(36);index"`
	TotalAmount float64     `json:"total_amount" gorm:"not null"`
	Currency    string      `json:"currency" gorm:"type:varchar(10);not null;default:inr"`
	Status      string      `json:"status" gorm:"type:varchar(50);not null;default:pending"`
	Items       []OrderItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
