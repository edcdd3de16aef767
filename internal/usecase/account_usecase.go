// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateAccountInput carries the mutable account fields. Nil pointers leave
// the stored value untouched. A nil or blank Password keeps the existing
// hash; a value that is already a bcrypt hash is stored verbatim.
type UpdateAccountInput struct {
	FirstName     *string
	LastName      *string
	Password      *string
	PaymentMethod *string
	Balance       *float64
	PortfolioURL  *string
}

// AccountUsecase defines the interface for account management operations.
type AccountUsecase interface {
	GetAccount(ctx context.Context, id uuid.UUID) (*entity.Identity, error)
	UpdateAccount(ctx context.Context, id uuid.UUID, input UpdateAccountInput) (*entity.Identity, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
	ListAccountsByRole(ctx context.Context, role entity.Role) ([]*entity.Identity, error)
	FindCustomersByPaymentMethod(ctx context.Context, paymentMethod string) ([]*entity.Identity, error)
}
