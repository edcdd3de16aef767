package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace/internal/delivery/http/security"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicyTable() []Rule {
	return []Rule{
		{Method: http.MethodGet, Pattern: "/health", Access: Public()},
		{Method: http.MethodPost, Pattern: "/auth/login", Access: Public()},
		{Method: http.MethodPost, Pattern: "/auth/register", Access: Public()},
		{Method: http.MethodGet, Pattern: "/products/**", Access: Public()},
		{Method: http.MethodPost, Pattern: "/products", Access: AnyOf(entity.RoleAdmin, entity.RoleDesigner)},
		{Method: "*", Pattern: "/admins/**", Access: RequireRole(entity.RoleAdmin)},
		{Method: "*", Pattern: "/customer/**", Access: RequireRole(entity.RoleCustomer)},
		{Method: http.MethodGet, Pattern: "/auth/me", Access: Authenticated()},
	}
}

func runGate(t *testing.T, method, path string, principal *security.Principal) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		security.Install(c, principal)
	}

	m := NewPolicyMiddleware(testPolicyTable(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	handler := m.Enforce(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	return handler(c)
}

func asCustomer() *security.Principal {
	return &security.Principal{
		Subject:   "buyer@example.com",
		UserID:    uuid.New(),
		Authority: entity.RoleCustomer.Authority(),
	}
}

func asAdmin() *security.Principal {
	return &security.Principal{
		Subject:   "root@example.com",
		UserID:    uuid.New(),
		Authority: entity.RoleAdmin.Authority(),
	}
}

func TestPolicyMiddleware_PublicRouteAllowsAnonymous(t *testing.T) {
	assert.NoError(t, runGate(t, http.MethodGet, "/health", nil))
	assert.NoError(t, runGate(t, http.MethodPost, "/auth/login", nil))
	assert.NoError(t, runGate(t, http.MethodGet, "/products", nil))
	assert.NoError(t, runGate(t, http.MethodGet, "/products/abc/reviews", nil))
}

func TestPolicyMiddleware_AnonymousOnProtectedRouteIs401(t *testing.T) {
	err := runGate(t, http.MethodGet, "/auth/me", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestPolicyMiddleware_WrongRoleIs403(t *testing.T) {
	err := runGate(t, http.MethodGet, "/admins/identities", asCustomer())

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestPolicyMiddleware_MatchingRolePasses(t *testing.T) {
	assert.NoError(t, runGate(t, http.MethodGet, "/admins/identities", asAdmin()))
	assert.NoError(t, runGate(t, http.MethodGet, "/customer/orders", asCustomer()))
}

func TestPolicyMiddleware_AnyOfAcceptsEitherRole(t *testing.T) {
	designer := &security.Principal{
		Subject:   "maker@example.com",
		UserID:    uuid.New(),
		Authority: entity.RoleDesigner.Authority(),
	}

	assert.NoError(t, runGate(t, http.MethodPost, "/products", asAdmin()))
	assert.NoError(t, runGate(t, http.MethodPost, "/products", designer))

	err := runGate(t, http.MethodPost, "/products", asCustomer())
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestPolicyMiddleware_MostSpecificRuleWins(t *testing.T) {
	// "POST /products" (literal, role-bound) must beat "GET /products/**"
	// even though both patterns cover the path space around /products.
	err := runGate(t, http.MethodPost, "/products", nil)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	// The wildcard public rule is method-bound to GET; a DELETE under
	// /products matches nothing and falls back to default-deny.
	err = runGate(t, http.MethodDelete, "/products/123", nil)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestPolicyMiddleware_UnlistedRouteDefaultsToAuthenticated(t *testing.T) {
	err := runGate(t, http.MethodGet, "/never/registered", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	// Any authenticated principal clears the default rule.
	assert.NoError(t, runGate(t, http.MethodGet, "/never/registered", asCustomer()))
}

func TestPolicyMiddleware_GarbageTokenOnPublicRouteStillServes(t *testing.T) {
	// The identity filter swallowed the bad token, so the gate sees an
	// anonymous request against a public rule.
	assert.NoError(t, runGate(t, http.MethodGet, "/products", nil))
}
