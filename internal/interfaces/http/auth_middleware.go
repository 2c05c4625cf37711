package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/berlivn/eriflex-api/pkg/jwt"
)

// Locals keys filled by AuthMiddleware.
const (
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
	LocalRole      = "role"
)

// AuthMiddleware validates the Bearer token and stores user_id, company_id and role in c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return writeError(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return writeError(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "expected: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return writeError(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "empty token")
		}
		userID, companyID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return writeError(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "invalid or expired token")
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalCompanyID, companyID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole must run after AuthMiddleware. 401 without a role, 403 when the role is not allowed.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return writeError(c, fiber.StatusUnauthorized, "MISSING_ROLE", "token carries no role")
		}
		if !hasRole(role, roles) {
			return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "Not enough permissions")
		}
		return c.Next()
	}
}

// RequireSelfOrRole lets the user named by route param through, and anyone holding one of roles.
func RequireSelfOrRole(param string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := GetUserID(c); id != "" && id == c.Params(param) {
			return c.Next()
		}
		role := GetRole(c)
		if role == "" {
			return writeError(c, fiber.StatusUnauthorized, "MISSING_ROLE", "token carries no role")
		}
		if !hasRole(role, roles) {
			return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "Not enough permissions")
		}
		return c.Next()
	}
}

func hasRole(role string, roles []string) bool {
	for _, r := range roles {
		if strings.EqualFold(role, r) {
			return true
		}
	}
	return false
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUserID user id set by AuthMiddleware, "" otherwise.
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetCompanyID company id set by AuthMiddleware.
func GetCompanyID(c *fiber.Ctx) string { return localString(c, LocalCompanyID) }

// GetRole role set by AuthMiddleware.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }
