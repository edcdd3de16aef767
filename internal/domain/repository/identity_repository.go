// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrIdentityNotFound is a domain-specific error returned when an identity lookup misses.
var ErrIdentityNotFound = errors.New("identity not found")

// IdentityRepository defines the standard operations for the credential store.
// All identities (admin, customer, designer) live in a single physical table
// so that the email-uniqueness invariant is enforced by the storage engine,
// not by application-level coordination.
type IdentityRepository interface {
	// FindByID retrieves a single identity by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error)

	// FindByEmail retrieves a single identity by its normalized email.
	// The lookup covers the entire identity namespace regardless of role.
	FindByEmail(ctx context.Context, email string) (*entity.Identity, error)

	// Create persists a new identity together with its role-specific profile.
	// A duplicate normalized email must be rejected by the store's unique
	// index; the error surfaces as a domain conflict.
	Create(ctx context.Context, identity *entity.Identity) error

	// Update modifies an existing identity and its profile.
	Update(ctx context.Context, identity *entity.Identity) error

	// Delete removes an identity and its profile rows.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByRole returns every identity carrying the given role.
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.Identity, error)

	// FindByPaymentMethod returns customers whose profile uses the given
	// payment method.
	FindByPaymentMethod(ctx context.Context, paymentMethod string) ([]*entity.Identity, error)
}
