package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace/internal/delivery/http/security"
	"marketplace/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// codecStub verifies exactly one known token string.
type codecStub struct {
	token  string
	claims *service.Claims
}

func (s *codecStub) Issue(string, string, string) (string, error) {
	return s.token, nil
}

func (s *codecStub) Verify(token string) (*service.Claims, error) {
	if token != s.token {
		return nil, service.ErrInvalidToken
	}

	return s.claims, nil
}

func (s *codecStub) ExtractEmail(token string) (string, error) {
	claims, err := s.Verify(token)
	if err != nil {
		return "", err
	}

	return claims.Subject, nil
}

func (s *codecStub) ExtractRole(token string) (string, error) {
	claims, err := s.Verify(token)
	if err != nil {
		return "", err
	}

	return claims.Role, nil
}

func (s *codecStub) ExtractUserID(token string) (string, error) {
	claims, err := s.Verify(token)
	if err != nil {
		return "", err
	}

	return claims.UserID, nil
}

func newCodecStub(role, userID string) *codecStub {
	claims := &service.Claims{Role: role, UserID: userID}
	claims.Subject = "alice@example.com"

	return &codecStub{token: "good-token", claims: claims}
}

func runFilter(t *testing.T, codec service.TokenCodec, authHeader string) (*security.Principal, bool, int) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var principal *security.Principal
	var installed bool

	m := NewIdentityMiddleware(codec, slog.New(slog.NewTextHandler(io.Discard, nil)))
	handler := m.Filter(func(c echo.Context) error {
		principal, installed = security.Current(c)

		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))

	return principal, installed, rec.Code
}

func TestIdentityMiddleware_ValidTokenInstallsPrincipal(t *testing.T) {
	userID := uuid.New()
	codec := newCodecStub("CUSTOMER", userID.String())

	principal, installed, code := runFilter(t, codec, "Bearer good-token")

	assert.Equal(t, http.StatusOK, code)
	require.True(t, installed)
	assert.Equal(t, "alice@example.com", principal.Subject)
	assert.Equal(t, userID, principal.UserID)
	assert.Equal(t, "ROLE_CUSTOMER", principal.Authority)
}

func TestIdentityMiddleware_MissingHeaderStaysAnonymous(t *testing.T) {
	codec := newCodecStub("CUSTOMER", uuid.NewString())

	_, installed, code := runFilter(t, codec, "")

	// The filter never rejects; the request continues without a principal.
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, installed)
}

func TestIdentityMiddleware_GarbageTokenStaysAnonymous(t *testing.T) {
	codec := newCodecStub("CUSTOMER", uuid.NewString())

	for _, header := range []string{
		"Bearer not-the-token",
		"Bearer ",
		"Basic good-token",
		"good-token",
	} {
		_, installed, code := runFilter(t, codec, header)

		assert.Equal(t, http.StatusOK, code, "header %q", header)
		assert.False(t, installed, "header %q", header)
	}
}

func TestIdentityMiddleware_UnusableClaimsStayAnonymous(t *testing.T) {
	// Verifiable token, but the role claim is outside the enumeration.
	badRole := newCodecStub("WIZARD", uuid.NewString())
	_, installed, code := runFilter(t, badRole, "Bearer good-token")
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, installed)

	// Verifiable token with a garbled user id.
	badID := newCodecStub("CUSTOMER", "not-a-uuid")
	_, installed, code = runFilter(t, badID, "Bearer good-token")
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, installed)
}

func TestIdentityMiddleware_RoleClaimWithPrefixNormalizes(t *testing.T) {
	codec := newCodecStub("role_admin", uuid.NewString())

	principal, installed, _ := runFilter(t, codec, "Bearer good-token")

	require.True(t, installed)
	assert.Equal(t, "ROLE_ADMIN", principal.Authority)
}
