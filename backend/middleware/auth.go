package middleware

import (
	"pluain/backend/config"
	"pluain/backend/models"
	"pluain/backend/store"
	"pluain/backend/utils"

	"github.com/gofiber/fiber/v2"
)

const sessionLocal = "session"

// AuthMiddleware accepts a token only while the session it was issued for
// is still the current one, so logging out or logging in again revokes it.
func AuthMiddleware(cfg *config.Config, sessions *store.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ExtractSessionFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}

		user := sessions.Current()
		if user == nil || user.ID != claims.SessionID {
			return utils.Unauthorized(c, "Session expired")
		}

		c.Locals(sessionLocal, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c *fiber.Ctx) *models.SessionUser {
	user, _ := c.Locals(sessionLocal).(*models.SessionUser)
	return user
}
