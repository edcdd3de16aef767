// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/domain/service"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) usecase.AccountUsecase {
	return &accountService{
		txManager: txManager,
		hasher:    hasher,
		logger:    logger,
	}
}

// GetAccount retrieves a single identity with its profile.
func (srv *accountService) GetAccount(ctx context.Context, id uuid.UUID) (*entity.Identity, error) {
	var identity *entity.Identity

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.IdentityRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrIdentityNotFound) {
				return domainerrors.ErrIdentityNotFound
			}

			return errors.Wrap(err, "failed to find identity")
		}
		identity = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return identity, nil
}

// UpdateAccount applies the given partial update to an identity.
func (srv *accountService) UpdateAccount(ctx context.Context, id uuid.UUID, input usecase.UpdateAccountInput) (*entity.Identity, error) {
	srv.logger.Info("Updating account", "identityID", id)

	var identity *entity.Identity

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		identityRepo := repoFactory.IdentityRepo()

		found, err := identityRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrIdentityNotFound) {
				return domainerrors.ErrIdentityNotFound
			}

			return errors.Wrap(err, "failed to find identity")
		}

		if input.FirstName != nil {
			found.FirstName = *input.FirstName
		}
		if input.LastName != nil {
			found.LastName = *input.LastName
		}

		if err := srv.applyPassword(found, input.Password); err != nil {
			return err
		}

		if input.PaymentMethod != nil || input.Balance != nil {
			if found.Customer == nil {
				return domainerrors.ErrValidationFailed.WrapMessage("identity has no customer profile")
			}
			if input.PaymentMethod != nil {
				found.Customer.PaymentMethod = *input.PaymentMethod
			}
			if input.Balance != nil {
				found.Customer.Balance = *input.Balance
			}
		}

		if input.PortfolioURL != nil {
			if found.Designer == nil {
				return domainerrors.ErrValidationFailed.WrapMessage("identity has no designer profile")
			}
			found.Designer.PortfolioURL = *input.PortfolioURL
		}

		if err := identityRepo.Update(ctx, found); err != nil {
			return errors.WithStack(err)
		}
		identity = found

		return nil
	})
	if err != nil {
		srv.logger.Warn("Account update failed", "identityID", id, "error", err)

		return nil, err
	}

	return identity, nil
}

// applyPassword folds an optional password change into the identity. A nil or
// blank value keeps the stored hash. A value already in bcrypt form is stored
// verbatim instead of being hashed a second time.
func (srv *accountService) applyPassword(identity *entity.Identity, password *string) error {
	if password == nil || strings.TrimSpace(*password) == "" {
		return nil
	}

	if srv.hasher.IsHash(*password) {
		identity.PasswordHash = *password

		return nil
	}

	hashed, err := srv.hasher.Hash(*password)
	if err != nil {
		return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}
	identity.PasswordHash = hashed

	return nil
}

// DeleteAccount removes an identity and its profile rows.
func (srv *accountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	srv.logger.Info("Deleting account", "identityID", id)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.IdentityRepo().Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrIdentityNotFound) {
				return domainerrors.ErrIdentityNotFound
			}

			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		srv.logger.Warn("Account deletion failed", "identityID", id, "error", err)

		return err
	}

	return nil
}

// ListAccountsByRole returns every identity carrying the given role.
func (srv *accountService) ListAccountsByRole(ctx context.Context, role entity.Role) ([]*entity.Identity, error) {
	if !role.IsValid() {
		return nil, domainerrors.ErrInvalidRole.WrapMessage("unknown role " + role.String())
	}

	var identities []*entity.Identity

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.IdentityRepo().ListByRole(ctx, role)
		if err != nil {
			return errors.Wrap(err, "failed to list identities")
		}
		identities = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return identities, nil
}

// FindCustomersByPaymentMethod returns customers filtered by payment method.
func (srv *accountService) FindCustomersByPaymentMethod(ctx context.Context, paymentMethod string) ([]*entity.Identity, error) {
	var identities []*entity.Identity

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.IdentityRepo().FindByPaymentMethod(ctx, paymentMethod)
		if err != nil {
			return errors.Wrap(err, "failed to find customers by payment method")
		}
		identities = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return identities, nil
}
