package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/contadores/internal/apperr"
	"github.com/Windi-Fikriyansyah/contadores/internal/utils"
)

// Locals keys set by LoadSession.
const (
	localClaims = "claims"
	LocalUserID = "userId"
	localRole   = "role"
)

// LoadSession reads the session cookie and, when the token is valid, exposes
// the claims on the context. Requests without a valid session pass through.
func LoadSession(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(utils.SessionCookie)
		if tokenStr == "" {
			return c.Next()
		}

		claims, err := utils.ParseJWT(secret, tokenStr)
		if err != nil {
			return c.Next()
		}
		uid, err := claims.UID()
		if err != nil {
			return c.Next()
		}

		c.Locals(localClaims, claims)
		c.Locals(LocalUserID, uid)
		c.Locals(localRole, strings.ToLower(strings.TrimSpace(claims.Role)))
		return c.Next()
	}
}

// Claims returns the session claims or nil.
func Claims(c *fiber.Ctx) *utils.Claims {
	claims, _ := c.Locals(localClaims).(*utils.Claims)
	return claims
}

// UserID returns the logged-in user id.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	uid, ok := c.Locals(LocalUserID).(uuid.UUID)
	return uid, ok && uid != uuid.Nil
}

// Role returns the logged-in role, "" when anonymous.
func Role(c *fiber.Ctx) string {
	role, _ := c.Locals(localRole).(string)
	return role
}

// RequireSessionPage sends anonymous visitors to the login page.
func RequireSessionPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := UserID(c); !ok {
			return c.Redirect("/login", fiber.StatusFound)
		}
		return c.Next()
	}
}

// RequireSessionJSON answers anonymous calls with the JSON failure flag.
func RequireSessionJSON() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := UserID(c); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": apperr.ErrUnauthenticated.Message,
			})
		}
		return c.Next()
	}
}

// RequireRoles must run after one of the RequireSession handlers.
func RequireRoles(allowed ...string) fiber.Handler {
	allowedSet := map[string]bool{}
	for _, r := range allowed {
		allowedSet[strings.ToLower(r)] = true
	}

	return func(c *fiber.Ctx) error {
		if !allowedSet[Role(c)] {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Acesso negado!",
			})
		}
		return c.Next()
	}
}
