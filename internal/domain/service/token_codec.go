package service

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single failure a TokenCodec surfaces. Signature
// mismatch, malformed structure and expiry all collapse into it so the error
// cannot be used as an oracle.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the verified claim set carried by an access token. The token is
// stateless: everything the request pipeline needs to resolve an identity is
// inside it, so verification never touches the database.
type Claims struct {
	Role   string `json:"role"`
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenCodec defines the interface for issuing and verifying the signed,
// self-expiring bearer tokens that bind subject email, role and user id.
type TokenCodec interface {
	// Issue builds and signs a claim set for the given identity. The userID
	// is stringified so the claim shape is independent of the id type.
	Issue(subject string, role string, userID string) (string, error)

	// Verify checks signature integrity and expiry. Every failure mode
	// (tampered, malformed, expired) collapses into the same error so callers
	// cannot distinguish them.
	Verify(token string) (*Claims, error)

	// ExtractEmail projects the subject out of a verified token. It fails
	// exactly the way Verify does on an invalid token.
	ExtractEmail(token string) (string, error)

	// ExtractRole projects the role claim out of a verified token.
	ExtractRole(token string) (string, error)

	// ExtractUserID projects the user id claim out of a verified token.
	ExtractUserID(token string) (string, error)
}
