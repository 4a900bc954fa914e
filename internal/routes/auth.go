package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ewallet/ewallet/internal/auth"
)

// RegisterAuthRoutes wires login/refresh/logout endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, rateLimiter fiber.Handler) {
	grp := r.Group("/auth")
	grp.Post("/login", rateLimiter, h.Login)
	grp.Post("/refresh", h.Refresh)
	grp.Post("/logout", h.Logout)
}
