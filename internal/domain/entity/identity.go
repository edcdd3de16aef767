// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Identity is the core account entity. Admins, customers and designers all
// share this shape; the Role discriminator plus the optional profile pointers
// express the concrete kind. Exactly one logical email namespace covers every
// identity regardless of role.
type Identity struct {
	ID           uuid.UUID        // Stable unique identifier for the account.
	Email        string           // Normalized (lower-cased) login handle; unique across all roles.
	FirstName    string           // Display first name.
	LastName     string           // Display last name.
	PasswordHash string           // bcrypt hash of the credential; never empty once persisted, never serialized outward.
	Role         Role             // Closed enumeration discriminator, always upper-case.
	Customer     *CustomerProfile // Non-nil only when Role is CUSTOMER.
	Designer     *DesignerProfile // Non-nil only when Role is DESIGNER.
	CreatedAt    time.Time        // Timestamp of account creation.
	UpdatedAt    time.Time        // Timestamp of the last modification.
}

// CustomerProfile holds data specific to the customer role.
type CustomerProfile struct {
	IdentityID    uuid.UUID // Foreign key linking the profile to its Identity.
	PaymentMethod string    // Preferred payment method label; empty until set.
	Balance       float64   // Store-credit balance.
	UpdatedAt     time.Time // Timestamp of the last profile modification.
}

// DesignerProfile holds data specific to the designer role.
type DesignerProfile struct {
	IdentityID   uuid.UUID // Foreign key linking the profile to its Identity.
	PortfolioURL string    // Public portfolio link shown on product pages.
	UpdatedAt    time.Time // Timestamp of the last profile modification.
}

// NormalizeEmail trims surrounding whitespace and lower-cases an email so the
// same address always maps onto the same row in the identity namespace.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
