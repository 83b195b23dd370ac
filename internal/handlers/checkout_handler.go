package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	fsession "github.com/gofiber/fiber/v2/middleware/session"

	"storefront/internal/middleware"
	"storefront/internal/services"
	"storefront/internal/session"
)

// sessionIDTemplate is substituted by the payment provider with the
// hosted session's ID on the success redirect.
const sessionIDTemplate = "?session_id={CHECKOUT_SESSION_ID}"

// CheckoutHandler drives the checkout workflow and the payment
// confirmation page.
type CheckoutHandler struct {
	checkout *services.CheckoutService
	store    *fsession.Store
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkout *services.CheckoutService, store *fsession.Store) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		store:    store,
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)
	router.Get("/checkout/success", h.HandleSuccess)
}

// HandleCheckout commits the session cart to a durable order. The cart
// is cleared and the order summary stashed in the session regardless
// of the payment outcome; the response is either a redirect to the
// hosted payment page or the local confirmation.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		log.Printf("Error loading session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load session",
		})
	}

	var userID *string
	if user, ok := middleware.UserFromContext(c); ok {
		userID = &user.ID
	}

	base := c.BaseURL()
	result, err := h.checkout.Checkout(c.UserContext(), services.CheckoutInput{
		Cart:       session.CartFrom(sess),
		UserID:     userID,
		SuccessURL: base + "/checkout/success" + sessionIDTemplate,
		CancelURL:  base + "/cart",
	})
	if errors.Is(err, services.ErrEmptyCart) {
		return c.Redirect("/cart", fiber.StatusSeeOther)
	}
	if err != nil {
		log.Printf("Error during checkout: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not complete checkout",
		})
	}

	session.SetLastOrder(sess, result.Summary)
	session.ClearCart(sess)
	if err := sess.Save(); err != nil {
		log.Printf("Error saving session after checkout: %v", err)
	}

	if result.RedirectURL != "" {
		return c.Redirect(result.RedirectURL, fiber.StatusSeeOther)
	}
	return c.JSON(result.Summary)
}

// HandleSuccess renders the confirmation from the session snapshot and
// idempotently marks the order paid. Direct navigation without a
// snapshot redirects to the landing page.
func (h *CheckoutHandler) HandleSuccess(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		log.Printf("Error loading session: %v", err)
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	summary, ok := session.LastOrder(sess)
	if !ok {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	if summary.OrderID != "" {
		// The snapshot is the trust source: a failed lookup or update
		// must not break the confirmation page.
		if err := h.checkout.ConfirmPayment(summary.OrderID); err != nil {
			log.Printf("Error confirming payment for order %s: %v", summary.OrderID, err)
		}
	}

	return c.JSON(summary)
}
