package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/session"
	"storefront/pkg/payments"
	"storefront/pkg/rabbitmq"
)

// ErrEmptyCart signals that checkout was attempted with nothing in the
// cart. No order is created in that case.
var ErrEmptyCart = errors.New("cart is empty")

// OrderEventPublisher publishes order lifecycle events. Nil disables
// publication.
type OrderEventPublisher interface {
	PublishOrderEvent(event rabbitmq.OrderEvent) error
}

// CheckoutService orchestrates the checkout workflow: it reconciles
// the session cart against the catalog, persists the order with its
// item snapshots in one transaction, and hands off to the payment
// provider when one is configured.
type CheckoutService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	provider    payments.Provider
	events      OrderEventPublisher
}

// NewCheckoutService creates a new CheckoutService. provider and
// events may be nil, which disables the respective integration.
func NewCheckoutService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	provider payments.Provider,
	events OrderEventPublisher,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		provider:    provider,
		events:      events,
	}
}

// CheckoutInput is one checkout attempt: the session cart, the signed
// in user if any, and the callback URLs for the payment provider.
type CheckoutInput struct {
	Cart       session.Cart
	UserID     *string
	SuccessURL string
	CancelURL  string
}

// CheckoutResult is what the handler renders. A non-empty RedirectURL
// means the customer should be sent to the hosted payment page;
// otherwise the Summary is rendered locally.
type CheckoutResult struct {
	Order       *models.Order
	Summary     session.OrderSummary
	RedirectURL string
}

// Checkout runs the order-commit workflow. Cart entries whose product
// no longer resolves are skipped silently; an all-stale cart still
// commits an order with zero items. Payment provider failures degrade
// to the local confirmation and never surface to the caller.
func (s *CheckoutService) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	if len(in.Cart) == 0 {
		return nil, ErrEmptyCart
	}

	ids := make([]string, 0, len(in.Cart))
	for id := range in.Cart {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	resolved, err := s.productRepo.GetByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart products: %w", err)
	}

	var subtotal float64
	var items []models.OrderItem
	var lines []session.OrderLine
	var payLines []payments.LineItem
	for _, id := range ids {
		product, ok := resolved[id]
		if !ok {
			continue
		}
		quantity := in.Cart[id]
		lineTotal := product.Price * float64(quantity)
		subtotal += lineTotal
		items = append(items, models.OrderItem{
			ProductID: id,
			Quantity:  quantity,
			UnitPrice: product.Price,
			LineTotal: lineTotal,
		})
		lines = append(lines, session.OrderLine{
			ProductName: product.Name,
			Quantity:    quantity,
			LineTotal:   lineTotal,
		})
		payLines = append(payLines, payments.LineItem{
			Name:       product.Name,
			UnitAmount: int64(math.Round(product.Price * 100)),
			Quantity:   quantity,
		})
	}

	// Without a payment processor the sale is trusted immediately.
	status := models.OrderStatusPaid
	if s.provider != nil {
		status = models.OrderStatusPending
	}

	order := &models.Order{
		ID:          uuid.New().String(),
		UserID:      in.UserID,
		TotalAmount: subtotal,
		Status:      status,
		Items:       items,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	s.publish(rabbitmq.OrderEvent{
		Event:   "order.created",
		OrderID: order.ID,
		UserID:  stringValue(in.UserID),
		Status:  order.Status,
		Total:   order.TotalAmount,
	})

	result := &CheckoutResult{
		Order: order,
		Summary: session.OrderSummary{
			OrderID:  order.ID,
			Lines:    lines,
			Subtotal: subtotal,
		},
	}

	if s.provider != nil && len(payLines) > 0 {
		paymentSession, err := s.provider.CreateSession(ctx, payments.CreateSessionParams{
			LineItems:  payLines,
			SuccessURL: in.SuccessURL,
			CancelURL:  in.CancelURL,
			Metadata:   map[string]string{"order_id": order.ID},
		})
		if err != nil {
			// Fall back to the local confirmation; the order stays
			// pending in storage.
			log.Printf("Payment session creation failed for order %s: %v", order.ID, err)
		} else {
			result.RedirectURL = paymentSession.URL
		}
	}

	return result, nil
}

// ConfirmPayment marks the order paid. It is idempotent: an already
// paid order is left untouched.
func (s *CheckoutService) ConfirmPayment(orderID string) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return fmt.Errorf("failed to load order %s for confirmation: %w", orderID, err)
	}
	if order.Status == models.OrderStatusPaid {
		return nil
	}

	if err := s.orderRepo.UpdateStatus(orderID, models.OrderStatusPaid); err != nil {
		return fmt.Errorf("failed to mark order %s paid: %w", orderID, err)
	}

	s.publish(rabbitmq.OrderEvent{
		Event:   "order.paid",
		OrderID: orderID,
		UserID:  stringValue(order.UserID),
		Status:  models.OrderStatusPaid,
		Total:   order.TotalAmount,
	})
	return nil
}

// OrderHistoryEntry is one dashboard row: the order plus display lines
// with the current product name, falling back to "Item" when the
// product is gone from the catalog.
type OrderHistoryEntry struct {
	ID          string              `json:"id"`
	CreatedAt   time.Time           `json:"created_at"`
	TotalAmount float64             `json:"total_amount"`
	Status      string              `json:"status"`
	Lines       []session.OrderLine `json:"lines"`
}

// OrderHistory returns the user's orders, newest first.
func (s *CheckoutService) OrderHistory(userID string) ([]OrderHistoryEntry, error) {
	orders, err := s.orderRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order history: %w", err)
	}

	idSet := map[string]struct{}{}
	for _, order := range orders {
		for _, item := range order.Items {
			idSet[item.ProductID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	products, err := s.productRepo.GetByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve order history products: %w", err)
	}

	entries := make([]OrderHistoryEntry, 0, len(orders))
	for _, order := range orders {
		lines := make([]session.OrderLine, 0, len(order.Items))
		for _, item := range order.Items {
			name := "Item"
			if product, ok := products[item.ProductID]; ok {
				name = product.Name
			}
			lines = append(lines, session.OrderLine{
				ProductName: name,
				Quantity:    item.Quantity,
				LineTotal:   item.LineTotal,
			})
		}
		entries = append(entries, OrderHistoryEntry{
			ID:          order.ID,
			CreatedAt:   order.CreatedAt,
			TotalAmount: order.TotalAmount,
			Status:      order.Status,
			Lines:       lines,
		})
	}
	return entries, nil
}

func (s *CheckoutService) publish(event rabbitmq.OrderEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishOrderEvent(event); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", event.Event, event.OrderID, err)
	}
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
