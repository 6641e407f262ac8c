package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/auth"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/logger"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
)

// PrincipalLocalKey is the locals key holding the authenticated auth.Principal.
const PrincipalLocalKey = "principal"

// TokenParser verifies a bearer token. *auth.Manager satisfies it.
type TokenParser interface {
	Parse(token string) (*auth.Principal, error)
}

// Auth requires a valid "Authorization: Bearer <token>" header and stores the caller
// in locals. Failures are returned as 401 fiber errors for the app's error handler.
func Auth(tokens TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		p, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(PrincipalLocalKey, *p)
		log := logger.FromContext(c.UserContext()).With("user_id", p.UserID)
		c.SetUserContext(logger.WithContext(c.UserContext(), log))

		return c.Next()
	}
}

// PrincipalFrom returns the caller stored by Auth.
func PrincipalFrom(c *fiber.Ctx) (auth.Principal, bool) {
	p, ok := c.Locals(PrincipalLocalKey).(auth.Principal)
	return p, ok
}

// RequireRole rejects callers whose role is not listed with 403. It must run after Auth.
func RequireRole(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		for _, r := range roles {
			if p.Role == r {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "insufficient role")
	}
}
