package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/studentregistry/registry-api/internal/core/domain"
	"github.com/studentregistry/registry-api/internal/metrics"
)

// PolicyRule maps a method + path prefix to the roles allowed through.
// Method "*" matches any method. A nil/empty Roles set with Public=false
// means "any authenticated principal".
type PolicyRule struct {
	Method string
	Prefix string
	Roles  []string
	Public bool
}

// Policy is the static route authorization table. Evaluation picks the most
// specific match: longest prefix first, and among equal prefixes an exact
// method beats the "*" wildcard. Unmatched routes require any authenticated
// principal. This layer is fail-closed: no principal means 401, wrong role
// means 403, with no detail about which capability was required.
type Policy struct {
	rules []PolicyRule
}

func NewPolicy(rules []PolicyRule) *Policy {
	return &Policy{rules: rules}
}

// DefaultPolicy is the route table for the registry API.
func DefaultPolicy() *Policy {
	return NewPolicy([]PolicyRule{
		{Method: "*", Prefix: "/api/auth/login", Public: true},
		{Method: "*", Prefix: "/api/auth/setup-admin", Public: true},
		{Method: "*", Prefix: "/api/auth", Roles: nil}, // me, logout, change-password: any principal
		{Method: "*", Prefix: "/api/users", Roles: []string{domain.RoleAdmin}},
		{Method: "*", Prefix: "/api/roles", Roles: []string{domain.RoleAdmin}},
		{Method: "*", Prefix: "/api/logs", Roles: []string{domain.RoleAdmin}},
		{Method: "GET", Prefix: "/api/settings", Roles: []string{domain.RoleAdmin, domain.RoleTeacher}},
		{Method: "*", Prefix: "/api/settings", Roles: []string{domain.RoleAdmin}},
		{Method: "*", Prefix: "/api/students", Roles: []string{domain.RoleAdmin, domain.RoleTeacher}},
		{Method: "*", Prefix: "/api/teachers", Roles: []string{domain.RoleAdmin, domain.RoleTeacher}},
		{Method: "*", Prefix: "/api/absences", Roles: []string{domain.RoleAdmin, domain.RoleTeacher}},
		{Method: "*", Prefix: "/api/courses", Roles: []string{domain.RoleAdmin, domain.RoleTeacher}},
		{Method: "GET", Prefix: "/api/enrollments", Roles: []string{domain.RoleAdmin, domain.RoleTeacher}},
		// Only creating and removing enrollments is admin-only. Grade updates
		// fall through to the default authenticated rule.
		{Method: "POST", Prefix: "/api/enrollments", Roles: []string{domain.RoleAdmin}},
		{Method: "DELETE", Prefix: "/api/enrollments", Roles: []string{domain.RoleAdmin}},
		{Method: "*", Prefix: "/health", Public: true},
		{Method: "*", Prefix: "/metrics", Public: true},
		{Method: "*", Prefix: "/swagger", Public: true},
	})
}

// match returns the most specific rule for the request, or nil.
func (p *Policy) match(method, path string) *PolicyRule {
	var best *PolicyRule
	for i := range p.rules {
		r := &p.rules[i]
		if r.Method != "*" && r.Method != method {
			continue
		}
		if !matchPrefix(path, r.Prefix) {
			continue
		}
		if best == nil ||
			len(r.Prefix) > len(best.Prefix) ||
			(len(r.Prefix) == len(best.Prefix) && best.Method == "*" && r.Method != "*") {
			best = r
		}
	}
	return best
}

// matchPrefix matches whole path segments: "/api/users" matches "/api/users"
// and "/api/users/5" but not "/api/users2".
func matchPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

// Enforce is the route-level authorization gate, run after BearerAuth.
func Enforce(policy *Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rule := policy.match(c.Request().Method, c.Request().URL.Path)
			if rule != nil && rule.Public {
				return next(c)
			}

			username, _ := c.Get(ContextUsername).(string)
			if username == "" {
				metrics.AuthorizationDeniedTotal.WithLabelValues("unauthenticated").Inc()
				return domain.ErrUnauthorized
			}
			if rule == nil || len(rule.Roles) == 0 {
				return next(c)
			}

			role, _ := c.Get(ContextRole).(string)
			for _, allowed := range rule.Roles {
				if role == allowed {
					return next(c)
				}
			}
			metrics.AuthorizationDeniedTotal.WithLabelValues("forbidden").Inc()
			return domain.ErrForbidden
		}
	}
}
