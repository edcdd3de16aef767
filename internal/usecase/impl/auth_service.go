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

	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	tokens    service.TokenCodec
	logger    *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	tokens service.TokenCodec,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		txManager: txManager,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register orchestrates the complete identity registration process.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	if email == "" {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("email is required")
	}
	if strings.TrimSpace(input.Password) == "" {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("password is required")
	}

	role, ok := entity.ParseRole(input.Role)
	if !ok {
		return nil, domainerrors.ErrInvalidRole.WrapMessage("unknown role " + input.Role)
	}

	srv.logger.Info("Starting registration", "email", email, "role", role)

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during registration", "error", err)

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	newIdentity := &entity.Identity{
		Email:        email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hashedPassword,
		Role:         role,
	}
	switch role {
	case entity.RoleCustomer:
		newIdentity.Customer = &entity.CustomerProfile{PaymentMethod: input.PaymentMethod}
	case entity.RoleDesigner:
		newIdentity.Designer = &entity.DesignerProfile{PortfolioURL: input.PortfolioURL}
	}

	// Execute the creation within a single transaction so the identity row
	// and its profile row land together. The pre-check gives a friendly
	// conflict; the unique index on email stays the final authority when two
	// registrations race.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		identityRepo := repoFactory.IdentityRepo()

		_, err := identityRepo.FindByEmail(ctx, email)
		if err == nil {
			return domainerrors.ErrEmailTaken.WrapMessage("registration failed")
		}
		if !errors.Is(err, repository.ErrIdentityNotFound) {
			return errors.Wrap(err, "failed to check existing identity")
		}

		if err := identityRepo.Create(ctx, newIdentity); err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		srv.logger.Warn("Registration failed", "email", email, "error", err)

		return nil, err
	}

	token, err := srv.tokens.Issue(newIdentity.Email, newIdentity.Role.String(), newIdentity.ID.String())
	if err != nil {
		srv.logger.Error("Failed to issue token after registration", "error", err)

		return nil, errors.Wrap(err, "failed to issue token")
	}
	srv.logger.Debug("Identity registered", "identityID", newIdentity.ID)

	return &usecase.AuthOutput{
		Token:    token,
		Identity: toIdentitySummary(newIdentity),
	}, nil
}

// Login verifies the credential pair and issues a fresh token. A missing
// identity and a wrong password both surface as the same generic error so the
// response never reveals which half of the pair was wrong.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	var identity *entity.Identity

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.IdentityRepo().FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrIdentityNotFound) {
				return domainerrors.ErrInvalidCredentials
			}

			return errors.Wrap(err, "failed to find identity")
		}
		identity = found

		return nil
	})
	if err != nil {
		srv.logger.Info("Login rejected", "email", email)

		return nil, err
	}

	if !srv.hasher.Check(input.Password, identity.PasswordHash) {
		srv.logger.Info("Login rejected", "email", email)

		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.tokens.Issue(identity.Email, identity.Role.String(), identity.ID.String())
	if err != nil {
		srv.logger.Error("Failed to issue token after login", "error", err)

		return nil, errors.Wrap(err, "failed to issue token")
	}
	srv.logger.Debug("Login succeeded", "identityID", identity.ID)

	return &usecase.AuthOutput{
		Token:    token,
		Identity: toIdentitySummary(identity),
	}, nil
}

// CurrentIdentity resolves a verified token subject back to its identity.
func (srv *authService) CurrentIdentity(ctx context.Context, subject string) (*usecase.IdentitySummary, error) {
	var identity *entity.Identity

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.IdentityRepo().FindByEmail(ctx, entity.NormalizeEmail(subject))
		if err != nil {
			if errors.Is(err, repository.ErrIdentityNotFound) {
				// A valid token naming a since-deleted identity is no longer
				// worth anything.
				return domainerrors.ErrUnauthorized.WrapMessage("identity no longer exists")
			}

			return errors.Wrap(err, "failed to find identity")
		}
		identity = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return toIdentitySummary(identity), nil
}

// toIdentitySummary projects an identity into its outward-facing shape,
// dropping the password hash.
func toIdentitySummary(identity *entity.Identity) *usecase.IdentitySummary {
	if identity == nil {
		return nil
	}

	return &usecase.IdentitySummary{
		ID:        identity.ID,
		Email:     identity.Email,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Role:      identity.Role,
	}
}
