// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new identity.
// Role selects the account kind; the profile fields only apply to the
// matching role and are ignored otherwise.
type RegisterInput struct {
	Email         string
	Password      string
	Role          string
	FirstName     string
	LastName      string
	PaymentMethod string
	PortfolioURL  string
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// IdentitySummary is the outward-facing projection of an identity.
// It deliberately omits the password hash.
type IdentitySummary struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	Role      entity.Role
}

// AuthOutput returns the signed token and the authenticated identity.
type AuthOutput struct {
	Token    string
	Identity *IdentitySummary
}

// AuthUsecase defines the interface for authentication operations.
// This is the contract that the delivery layer depends on.
type AuthUsecase interface {
	// Register creates a new identity and returns a freshly issued token,
	// so a successful registration doubles as a login.
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)

	// Login verifies an email/password pair and issues a token. Every
	// failure mode surfaces as the same invalid-credentials error.
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// CurrentIdentity resolves a token subject (the normalized email)
	// back to the identity it names.
	CurrentIdentity(ctx context.Context, subject string) (*IdentitySummary, error)
}
