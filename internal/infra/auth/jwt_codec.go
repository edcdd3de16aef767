// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"marketplace/config"
	"marketplace/internal/domain/service"
)

// jwtCodec is a concrete implementation of the TokenCodec interface using the JWT standard.
// Tokens are stateless on purpose: verification is a pure signature check with
// no session store behind it, trading revocability for zero-latency validation.
type jwtCodec struct {
	signingKey []byte        // Symmetric key for HS256 signing.
	ttl        time.Duration // Lifetime of issued tokens; expiry is the only termination mechanism.
	now        func() time.Time
}

// NewJWTCodec is the constructor for jwtCodec.
// It takes configuration values to create a new token codec instance.
func NewJWTCodec(cfg *config.Config) (service.TokenCodec, error) {
	if cfg.Auth == nil || cfg.Auth.SigningKey == "" {
		return nil, errors.New("jwt signing key must be provided")
	}

	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &jwtCodec{
		signingKey: []byte(cfg.Auth.SigningKey),
		ttl:        ttl,
		now:        time.Now,
	}, nil
}

// Issue creates a signed claim set binding subject email, role and user id.
func (c *jwtCodec) Issue(subject, role, userID string) (string, error) {
	now := c.now()
	claims := &service.Claims{
		Role:   role,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.signingKey)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify checks signature integrity and expiry. Any failure collapses into
// service.ErrInvalidToken so expired, tampered and malformed tokens are
// indistinguishable to the caller.
func (c *jwtCodec) Verify(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return c.signingKey, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil || !token.Valid {
		return nil, service.ErrInvalidToken
	}

	return claims, nil
}

// ExtractEmail projects the subject claim out of a verified token.
func (c *jwtCodec) ExtractEmail(tokenString string) (string, error) {
	claims, err := c.Verify(tokenString)
	if err != nil {
		return "", err
	}

	return claims.Subject, nil
}

// ExtractRole projects the role claim out of a verified token.
func (c *jwtCodec) ExtractRole(tokenString string) (string, error) {
	claims, err := c.Verify(tokenString)
	if err != nil {
		return "", err
	}

	return claims.Role, nil
}

// ExtractUserID projects the user id claim out of a verified token.
func (c *jwtCodec) ExtractUserID(tokenString string) (string, error) {
	claims, err := c.Verify(tokenString)
	if err != nil {
		return "", err
	}

	return claims.UserID, nil
}
