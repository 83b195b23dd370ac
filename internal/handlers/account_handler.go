package handlers

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	fsession "github.com/gofiber/fiber/v2/middleware/session"

	"storefront/internal/middleware"
	"storefront/internal/services"
	"storefront/internal/session"
)

// AccountHandler handles the profile form and the order history
// dashboard.
type AccountHandler struct {
	accounts *services.AccountService
	checkout *services.CheckoutService
	store    *fsession.Store
	validate *validator.Validate
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts *services.AccountService, checkout *services.CheckoutService, store *fsession.Store) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		checkout: checkout,
		store:    store,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the account routes with the Fiber app.
func (h *AccountHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/profile", h.HandleProfile)
	router.Post("/profile", h.HandleUpdateProfile)
	router.Get("/dashboard", h.HandleDashboard)
}

// ProfileRequest is the profile upsert payload.
type ProfileRequest struct {
	Name  string `json:"name" form:"name" validate:"required,min=1,max=255"`
	Email string `json:"email" form:"email" validate:"required,email"`
}

// HandleProfile shows the current session user, if any.
func (h *AccountHandler) HandleProfile(c *fiber.Ctx) error {
	var response fiber.Map
	if user, ok := middleware.UserFromContext(c); ok {
		response = fiber.Map{"user": user}
	} else {
		response = fiber.Map{"user": nil}
	}
	response["cart_count"] = h.cartCount(c)
	return c.JSON(response)
}

// HandleUpdateProfile upserts the user by normalized email and binds
// the session to them.
func (h *AccountHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing profile request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	user, err := h.accounts.UpsertProfile(req.Name, req.Email)
	if err != nil {
		log.Printf("Error upserting profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save profile",
		})
	}

	sess, err := h.store.Get(c)
	if err != nil {
		log.Printf("Error loading session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load session",
		})
	}
	session.SetUserID(sess, user.ID)
	if err := sess.Save(); err != nil {
		log.Printf("Error saving session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save session",
		})
	}

	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// HandleDashboard shows the user's order history, newest first. An
// anonymous session is sent to the profile form.
func (h *AccountHandler) HandleDashboard(c *fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return c.Redirect("/profile", fiber.StatusSeeOther)
	}

	orders, err := h.checkout.OrderHistory(user.ID)
	if err != nil {
		log.Printf("Error loading order history for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load order history",
		})
	}

	return c.JSON(fiber.Map{
		"user":       user,
		"orders":     orders,
		"cart_count": h.cartCount(c),
	})
}

func (h *AccountHandler) cartCount(c *fiber.Ctx) int {
	sess, err := h.store.Get(c)
	if err != nil {
		return 0
	}
	return session.CartFrom(sess).Count()
}
