// Package middleware contains the HTTP middleware chain of the API.
package middleware

import (
	"log/slog"
	"strings"

	"marketplace/internal/delivery/http/metrics"
	"marketplace/internal/delivery/http/security"
	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// IdentityMiddleware reads the bearer token off each request and, when it
// verifies, installs a principal in the request context. It never rejects a
// request itself: a missing, malformed or expired token just leaves the
// request anonymous, and the authorization gate downstream decides whether
// anonymous is good enough for the route.
type IdentityMiddleware struct {
	tokens service.TokenCodec
	logger *slog.Logger
}

// NewIdentityMiddleware is the constructor for IdentityMiddleware.
func NewIdentityMiddleware(tokens service.TokenCodec, logger *slog.Logger) *IdentityMiddleware {
	return &IdentityMiddleware{tokens: tokens, logger: logger}
}

// Filter is the middleware function. It runs on every request, before the
// authorization gate.
func (m *IdentityMiddleware) Filter(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, bearerPrefix) {
			return next(c)
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			return next(c)
		}

		claims, err := m.tokens.Verify(tokenString)
		if err != nil {
			// The single collapsed token error. Count it, log it, move on.
			metrics.TokenRejectionsTotal.Inc()
			m.logger.Debug("Bearer token rejected", "path", c.Request().URL.Path)

			return next(c)
		}

		principal, ok := principalFromClaims(claims)
		if !ok {
			metrics.TokenRejectionsTotal.Inc()
			m.logger.Debug("Bearer token carried unusable claims", "path", c.Request().URL.Path)

			return next(c)
		}

		security.Install(c, principal)

		return next(c)
	}
}

// principalFromClaims maps a verified claim set onto a principal. Claims that
// do not form a usable identity (unknown role, garbled user id) yield none.
func principalFromClaims(claims *service.Claims) (*security.Principal, bool) {
	role, ok := entity.ParseRole(claims.Role)
	if !ok {
		return nil, false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, false
	}

	return &security.Principal{
		Subject:   claims.Subject,
		UserID:    userID,
		Authority: role.Authority(),
	}, true
}
