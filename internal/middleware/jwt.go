package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ewallet/ewallet/internal/auth"
	"github.com/ewallet/ewallet/internal/config"
	"github.com/ewallet/ewallet/internal/identity"
)

// JWTAuth returns a middleware that validates JWT access tokens and checks
// the token version against the identity registry.
func JWTAuth(cfg config.Config, users identity.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])
		claims, err := auth.ParseAndVerifyHS256(tokenStr, []byte(cfg.JWTSecret))
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}
		sub, _ := claims["sub"].(float64)
		verFloat, _ := claims["ver"].(float64)
		ver := int(verFloat)

		user, err := users.FindByID(c.UserContext(), int64(sub))
		if err != nil || user.TokenVersion != ver {
			return fiber.NewError(http.StatusUnauthorized, "token invalidated")
		}

		c.Locals("user_id", user.ID)
		c.Locals("role", string(user.Role))
		return c.Next()
	}
}
