// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/domain/service"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// designerService implements the DesignerUsecase interface.
type designerService struct {
	txManager repository.TransactionManager
	qrcode    service.QRCodeService
	logger    *slog.Logger
}

// NewDesignerService is the constructor for designerService.
func NewDesignerService(
	txManager repository.TransactionManager,
	qrcode service.QRCodeService,
	logger *slog.Logger,
) usecase.DesignerUsecase {
	return &designerService{
		txManager: txManager,
		qrcode:    qrcode,
		logger:    logger,
	}
}

// ListDesigners returns every designer identity.
func (srv *designerService) ListDesigners(ctx context.Context) ([]*entity.Identity, error) {
	var designers []*entity.Identity

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.IdentityRepo().ListByRole(ctx, entity.RoleDesigner)
		if err != nil {
			return errors.Wrap(err, "failed to list designers")
		}
		designers = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return designers, nil
}

// PortfolioQR renders the designer's portfolio link as a PNG QR code.
func (srv *designerService) PortfolioQR(ctx context.Context, designerID uuid.UUID) ([]byte, error) {
	var portfolioURL string

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		identity, err := repoFactory.IdentityRepo().FindByID(ctx, designerID)
		if err != nil {
			if errors.Is(err, repository.ErrIdentityNotFound) {
				return domainerrors.ErrIdentityNotFound
			}

			return errors.Wrap(err, "failed to find designer")
		}

		if identity.Designer == nil {
			return domainerrors.ErrValidationFailed.WrapMessage("identity has no designer profile")
		}
		if identity.Designer.PortfolioURL == "" {
			return domainerrors.ErrValidationFailed.WrapMessage("designer has no portfolio url")
		}
		portfolioURL = identity.Designer.PortfolioURL

		return nil
	})
	if err != nil {
		return nil, err
	}

	png, err := srv.qrcode.GeneratePortfolioQR(portfolioURL)
	if err != nil {
		srv.logger.Error("Failed to render portfolio QR code", "designerID", designerID, "error", err)

		return nil, errors.Wrap(err, "failed to render portfolio qr code")
	}

	return png, nil
}
