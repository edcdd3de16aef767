// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
)

// DesignerUsecase defines the interface for designer-facing operations.
type DesignerUsecase interface {
	// ListDesigners returns every designer identity.
	ListDesigners(ctx context.Context) ([]*entity.Identity, error)

	// PortfolioQR renders the designer's portfolio link as a PNG QR code
	// for printing on product packaging.
	PortfolioQR(ctx context.Context, designerID uuid.UUID) ([]byte, error)
}
