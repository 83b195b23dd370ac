package handlers

import (
	"log"
	"sort"

	"github.com/gofiber/fiber/v2"
	fsession "github.com/gofiber/fiber/v2/middleware/session"

	"storefront/internal/services"
	"storefront/internal/session"
)

// CartHandler handles the session cart: add, view and clear.
type CartHandler struct {
	catalog *services.CatalogService
	store   *fsession.Store
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(catalog *services.CatalogService, store *fsession.Store) *CartHandler {
	return &CartHandler{
		catalog: catalog,
		store:   store,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Post("/add/:id", h.HandleAdd)
	cartRoutes.Get("/", h.HandleView)
	cartRoutes.Post("/clear", h.HandleClear)
}

// HandleAdd increments the product's cart quantity by one. An unknown
// product ID redirects without touching the cart.
func (h *CartHandler) HandleAdd(c *fiber.Ctx) error {
	productID := c.Params("id")
	if _, err := h.catalog.Get(productID); err != nil {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	sess, err := h.store.Get(c)
	if err != nil {
		log.Printf("Error loading session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load session",
		})
	}

	cart := session.CartFrom(sess)
	cart.Add(productID)
	session.SaveCart(sess, cart)
	if err := sess.Save(); err != nil {
		log.Printf("Error saving session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save session",
		})
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleView renders the cart. Entries whose product no longer
// resolves are dropped from the view and excluded from the subtotal.
func (h *CartHandler) HandleView(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		log.Printf("Error loading session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load session",
		})
	}

	cart := session.CartFrom(sess)
	ids := make([]string, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	products, err := h.catalog.GetMany(ids)
	if err != nil {
		log.Printf("Error resolving cart products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load cart",
		})
	}

	items := make([]fiber.Map, 0, len(ids))
	var subtotal float64
	for _, id := range ids {
		product, ok := products[id]
		if !ok {
			continue
		}
		quantity := cart[id]
		lineTotal := product.Price * float64(quantity)
		subtotal += lineTotal
		items = append(items, fiber.Map{
			"product":    product,
			"quantity":   quantity,
			"line_total": lineTotal,
		})
	}

	return c.JSON(fiber.Map{
		"items":      items,
		"subtotal":   subtotal,
		"cart_count": cart.Count(),
	})
}

// HandleClear resets the cart unconditionally.
func (h *CartHandler) HandleClear(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		log.Printf("Error loading session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load session",
		})
	}

	session.ClearCart(sess)
	if err := sess.Save(); err != nil {
		log.Printf("Error saving session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save session",
		})
	}

	return c.Redirect("/cart", fiber.StatusSeeOther)
}
