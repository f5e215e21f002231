package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/studentregistry/registry-api/internal/core/domain"
	"github.com/studentregistry/registry-api/internal/core/ports"
)

// Context keys under which the authenticated principal is installed.
const (
	ContextUsername  = "username"
	ContextRole      = "role"
	ContextAuthority = "authority"
)

// BearerAuth extracts and validates the bearer token, installing the
// principal for the rest of the request. It is deliberately fail-open: a
// missing, malformed, expired, or tampered token leaves the request anonymous
// and forwards it — the route policy afterwards is what rejects. Collapsing
// parse failures into hard errors here would break the public routes.
//
// The step is idempotent: an already-installed principal is left alone.
func BearerAuth(codec ports.TokenCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if username, _ := c.Get(ContextUsername).(string); username != "" {
				return next(c)
			}

			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return next(c)
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}
			token := parts[1]

			subject, err := codec.ParseSubject(token)
			if err != nil || subject == "" {
				return next(c)
			}
			role, err := codec.ParseRole(token)
			if err != nil || role == "" {
				// Structurally valid token without a role claim: treated as
				// anonymous, not as an error.
				return next(c)
			}
			if !codec.Validate(token, subject) {
				return next(c)
			}

			role = domain.NormalizeRole(role)
			c.Set(ContextUsername, subject)
			c.Set(ContextRole, role)
			c.Set(ContextAuthority, domain.Authority(role))
			return next(c)
		}
	}
}
