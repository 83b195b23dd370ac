// Package session gives typed access to the per-visitor session state:
// the shopping cart and the last-order snapshot used by the checkout
// confirmation page. Handlers go through these helpers instead of
// reaching into the session by raw keys.
package session

import (
	"encoding/gob"

	fsession "github.com/gofiber/fiber/v2/middleware/session"
)

const (
	cartKey      = "cart"
	lastOrderKey = "last_order"
	userIDKey    = "user_id"
)

func init() {
	// Session values are gob-encoded on save.
	gob.Register(Cart{})
	gob.Register(OrderSummary{})
}

// Cart maps a product ID to a positive quantity. A product that is not
// in the cart is absent from the map, never present with a zero count.
type Cart map[string]int

// Add increments the quantity for a product by one.
func (c Cart) Add(productID string) {
	c[productID] = c[productID] + 1
}

// Count returns the total number of items across all cart entries.
func (c Cart) Count() int {
	total := 0
	for _, qty := range c {
		total += qty
	}
	return total
}

// OrderLine is one rendered line of an order summary.
type OrderLine struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	LineTotal   float64 `json:"line_total"`
}

// OrderSummary is the snapshot of a committed order kept in the
// session so the confirmation page renders even when storage is
// unreachable.
type OrderSummary struct {
	OrderID  string      `json:"order_id"`
	Lines    []OrderLine `json:"lines"`
	Subtotal float64     `json:"subtotal"`
}

// CartFrom returns the session cart, or an empty cart when none has
// been stored yet.
func CartFrom(sess *fsession.Session) Cart {
	if cart, ok := sess.Get(cartKey).(Cart); ok {
		return cart
	}
	return Cart{}
}

// SaveCart stores the cart back into the session.
func SaveCart(sess *fsession.Session, cart Cart) {
	sess.Set(cartKey, cart)
}

// ClearCart resets the session cart to empty.
func ClearCart(sess *fsession.Session) {
	sess.Set(cartKey, Cart{})
}

// LastOrder returns the stashed order summary, if any.
func LastOrder(sess *fsession.Session) (OrderSummary, bool) {
	summary, ok := sess.Get(lastOrderKey).(OrderSummary)
	return summary, ok
}

// SetLastOrder stashes the order summary for the confirmation page.
func SetLastOrder(sess *fsession.Session, summary OrderSummary) {
	sess.Set(lastOrderKey, summary)
}

// UserID returns the signed-in user's ID, if the session has one.
func UserID(sess *fsession.Session) (string, bool) {
	id, ok := sess.Get(userIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// SetUserID associates the session with a user.
func SetUserID(sess *fsession.Session, id string) {
	sess.Set(userIDKey, id)
}
