package middleware

import (
	"github.com/gofiber/fiber/v2"
	fsession "github.com/gofiber/fiber/v2/middleware/session"

	"storefront/internal/models"
	"storefront/internal/services"
	"storefront/internal/session"
)

const userLocalsKey = "current_user"

// LoadUser resolves the session's user ID to a user record and stashes
// it in the request locals. It never blocks a request: an anonymous
// session or a stale user ID just means no current user, since
// checkout works without one.
func LoadUser(store *fsession.Store, accounts *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Next()
		}

		if id, ok := session.UserID(sess); ok {
			if user, err := accounts.GetByID(id); err == nil {
				c.Locals(userLocalsKey, user)
			}
		}
		return c.Next()
	}
}

// UserFromContext returns the current user stashed by LoadUser, if any.
func UserFromContext(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(userLocalsKey).(*models.User)
	return user, ok
}
