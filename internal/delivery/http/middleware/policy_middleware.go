package middleware

import (
	"log/slog"
	"slices"
	"sort"
	"strings"

	"marketplace/internal/delivery/http/metrics"
	"marketplace/internal/delivery/http/security"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// Expression is one access requirement in the route policy table.
type Expression struct {
	public        bool
	authenticated bool
	anyOf         []string
}

// Public allows every caller, anonymous included.
func Public() Expression {
	return Expression{public: true}
}

// Authenticated requires a principal but accepts any role.
func Authenticated() Expression {
	return Expression{authenticated: true}
}

// RequireRole requires a principal carrying exactly the given role.
func RequireRole(role entity.Role) Expression {
	return AnyOf(role)
}

// AnyOf requires a principal carrying any one of the given roles.
func AnyOf(roles ...entity.Role) Expression {
	authorities := make([]string, 0, len(roles))
	for _, role := range roles {
		authorities = append(authorities, role.Authority())
	}

	return Expression{anyOf: authorities}
}

// Rule binds one method and path pattern to an access expression. A pattern
// is a slash-separated list of segments where "*" matches exactly one segment
// and a trailing "**" matches any remainder, including none.
type Rule struct {
	Method  string // "*" matches every method
	Pattern string
	Access  Expression

	segments []string
}

// PolicyMiddleware is the authorization gate. Every request is matched
// against the rule table, most specific pattern first; a request matching no
// rule falls back to requiring authentication, so an unlisted route is never
// silently public.
type PolicyMiddleware struct {
	rules  []Rule
	logger *slog.Logger
}

// NewPolicyMiddleware builds the gate from a rule table. The table is sorted
// once by specificity so lookup order never depends on registration order.
func NewPolicyMiddleware(rules []Rule, logger *slog.Logger) *PolicyMiddleware {
	prepared := make([]Rule, len(rules))
	copy(prepared, rules)
	for i := range prepared {
		prepared[i].segments = strings.Split(strings.Trim(prepared[i].Pattern, "/"), "/")
	}

	sort.SliceStable(prepared, func(i, j int) bool {
		return specificity(prepared[i]) > specificity(prepared[j])
	})

	return &PolicyMiddleware{rules: prepared, logger: logger}
}

// Enforce is the middleware function. It must run after the identity filter.
func (m *PolicyMiddleware) Enforce(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		access := m.lookup(req.Method, req.URL.Path)

		if access.public {
			return next(c)
		}

		principal, ok := security.Current(c)
		if !ok {
			// Empty security context: the caller failed to authenticate, so
			// this is 401, not 403.
			metrics.GateDenialsTotal.WithLabelValues("unauthenticated").Inc()
			m.logger.Debug("Gate denied anonymous request", "method", req.Method, "path", req.URL.Path)

			return domainerrors.ErrUnauthorized
		}

		if access.authenticated || slices.Contains(access.anyOf, principal.Authority) {
			return next(c)
		}

		// Authenticated but the role does not satisfy the expression.
		metrics.GateDenialsTotal.WithLabelValues("forbidden").Inc()
		m.logger.Debug("Gate denied request",
			"method", req.Method,
			"path", req.URL.Path,
			"authority", principal.Authority,
		)

		return domainerrors.ErrForbidden
	}
}

// lookup returns the access expression of the most specific matching rule,
// falling back to default-deny (authentication required).
func (m *PolicyMiddleware) lookup(method, path string) Expression {
	pathSegments := strings.Split(strings.Trim(path, "/"), "/")

	for _, rule := range m.rules {
		if rule.Method != "*" && rule.Method != method {
			continue
		}
		if matchSegments(rule.segments, pathSegments) {
			return rule.Access
		}
	}

	return Authenticated()
}

// matchSegments reports whether the pattern segments cover the path segments.
func matchSegments(pattern, path []string) bool {
	for i, seg := range pattern {
		if seg == "**" {
			return true
		}
		if i >= len(path) {
			return false
		}
		if seg != "*" && seg != path[i] {
			return false
		}
	}

	return len(pattern) == len(path)
}

// specificity ranks rules so that literal segments beat single-segment
// wildcards, a trailing "**" makes a pattern less specific than its literal
// counterpart, and a method-bound rule beats a method wildcard on an
// otherwise equal pattern.
func specificity(r Rule) int {
	score := 0
	for _, seg := range r.segments {
		switch seg {
		case "**":
			score -= 50
		case "*":
			score += 10
		default:
			score += 100
		}
	}
	if r.Method != "*" {
		score += 5
	}

	return score
}
