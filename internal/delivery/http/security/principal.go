// Package security carries the per-request identity installed by the token
// filter and consumed by the authorization gate and the handlers.
package security

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// contextKey is the echo context slot holding the principal.
const contextKey = "security_principal"

// Principal is the authenticated identity attached to a request. Requests
// that carried no usable token simply have no principal; the request itself
// still proceeds and the gate decides what an anonymous caller may reach.
type Principal struct {
	// Subject is the normalized email the token was issued for.
	Subject string

	// UserID is the identity's unique id.
	UserID uuid.UUID

	// Authority is the prefixed role label, e.g. "ROLE_ADMIN".
	Authority string
}

// Install attaches the principal to the request context.
func Install(c echo.Context, p *Principal) {
	c.Set(contextKey, p)
}

// Current returns the request's principal, if one was installed.
func Current(c echo.Context) (*Principal, bool) {
	p, ok := c.Get(contextKey).(*Principal)
	if !ok || p == nil {
		return nil, false
	}

	return p, true
}
