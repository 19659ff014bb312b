package routes

import (
	"strconv"

	"github.com/BerryWebFounder/berryweb-shop/apperrors"

	"github.com/gofiber/fiber/v2"
)

// JWT parsing happens at the edge gateway; this service trusts the bearer
// token plus the X-User-Id header it forwards.

// RequireAuth rejects requests missing the credential or caller id.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		userID, err := strconv.ParseUint(c.Get("X-User-Id"), 10, 32)
		if auth == "" || err != nil {
			return fail(c, apperrors.ErrUnauthorized)
		}
		c.Locals("token", auth)
		c.Locals("userID", uint(userID))
		return c.Next()
	}
}

// OptionalAuth passes caller identity through when present.
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("token", c.Get("Authorization"))
		if userID, err := strconv.ParseUint(c.Get("X-User-Id"), 10, 32); err == nil {
			c.Locals("userID", uint(userID))
		}
		return c.Next()
	}
}

func callerID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

func callerToken(c *fiber.Ctx) string {
	if token, ok := c.Locals("token").(string); ok {
		return token
	}
	return ""
}
