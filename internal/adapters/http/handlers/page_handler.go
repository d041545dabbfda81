package handlers

import (
	"maintdesk/internal/core/access"
	"maintdesk/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// PageHandler serves the navigation endpoints the gate routes users
// through. The dashboard frontend owns the rendering; these endpoints
// return the page context it needs.
type PageHandler struct {
	gate *access.Gate
}

// NewPageHandler creates a new page handler
func NewPageHandler(gate *access.Gate) *PageHandler {
	return &PageHandler{gate: gate}
}

// Login serves the login page context
func (h *PageHandler) Login(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page": "login",
	})
}

// Register serves the registration page context
func (h *PageHandler) Register(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page": "register",
	})
}

// AccessDenied serves the access-denied page context
func (h *PageHandler) AccessDenied(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"page":    "access-denied",
		"message": "You do not have access to this area",
	})
}

// RoleDashboard serves the landing page context for a role area. The
// gate has already verified the session, so the locals are trusted.
func (h *PageHandler) RoleDashboard(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(domain.Role)
	username, _ := c.Locals("username").(string)
	home, _ := h.gate.Policy().HomePath(role)

	return c.JSON(fiber.Map{
		"page":     "dashboard",
		"area":     string(role),
		"username": username,
		"home":     home,
	})
}
