package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	fsession "github.com/gofiber/fiber/v2/middleware/session"

	"storefront/internal/services"
	"storefront/internal/session"
)

// CatalogHandler serves the landing page: the filtered product list
// plus the filter metadata the storefront UI needs.
type CatalogHandler struct {
	catalog *services.CatalogService
	store   *fsession.Store
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *services.CatalogService, store *fsession.Store) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		store:   store,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleHome)
}

// HandleHome lists products filtered by text query, category and price
// band.
func (h *CatalogHandler) HandleHome(c *fiber.Ctx) error {
	filter := services.CatalogFilter{
		Query:     c.Query("q"),
		Category:  c.Query("category"),
		PriceBand: c.Query("price"),
	}

	products, err := h.catalog.List(filter)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load the catalog",
		})
	}

	categories, err := h.catalog.Categories()
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load the catalog",
		})
	}

	return c.JSON(fiber.Map{
		"products":          products,
		"categories":        categories,
		"selected_category": filter.Category,
		"search_query":      filter.Query,
		"price_band":        filter.PriceBand,
		"cart_count":        h.cartCount(c),
	})
}

func (h *CatalogHandler) cartCount(c *fiber.Ctx) int {
	sess, err := h.store.Get(c)
	if err != nil {
		return 0
	}
	return session.CartFrom(sess).Count()
}
