package middleware

import (
	"strings"

	"maintdesk/internal/config"
	"maintdesk/internal/core/access"
	"maintdesk/internal/core/domain"
	"maintdesk/internal/pkg/jwt"
	"maintdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// tokenFromRequest reads the access token from cookie first, then the
// Authorization header.
func tokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies("access_token"); token != "" {
		return token
	}
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// setSessionLocals exposes the validated session to handlers
func setSessionLocals(c *fiber.Ctx, session *domain.Session) {
	c.Locals("userID", session.UserID)
	c.Locals("username", session.Username)
	c.Locals("role", session.Role)
}

// AuthMiddleware creates authentication middleware for API routes
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := tokenFromRequest(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		session, err := jwt.ValidateSession(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		setSessionLocals(c, session)
		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(domain.Role)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// ManagerOrAdmin middleware allows manager or admin roles
func ManagerOrAdmin() fiber.Handler {
	return RoleMiddleware(domain.RoleManager, domain.RoleAdmin)
}

// NavigationGate runs the access gate over page navigations and turns
// its decisions into redirects. Every non-API request passes through
// here before reaching a page handler.
func NavigationGate(gate *access.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		// API and docs have their own auth chain.
		if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/swagger") || path == "/health" {
			return c.Next()
		}

		decision := gate.Decide(path, tokenFromRequest(c))
		if decision.ClearToken {
			c.Cookie(&fiber.Cookie{
				Name:     "access_token",
				Value:    "",
				MaxAge:   -1,
				HTTPOnly: true,
			})
		}

		switch decision.Kind {
		case access.Allow:
			if decision.Session != nil {
				setSessionLocals(c, decision.Session)
			}
			return c.Next()
		case access.RedirectLogin, access.RedirectHome, access.RedirectDenied:
			return c.Redirect(decision.Target, fiber.StatusFound)
		default:
			// Unknown decision kinds deny rather than pass through.
			return c.Redirect(access.AccessDeniedPath, fiber.StatusFound)
		}
	}
}
