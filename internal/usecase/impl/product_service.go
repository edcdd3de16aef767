// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// productService implements the ProductUsecase interface.
type productService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.ProductUsecase {
	return &productService{
		txManager: txManager,
		logger:    logger,
	}
}

// ListProducts returns the entire catalog.
func (srv *productService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	var products []*entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ProductRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list products")
		}
		products = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return products, nil
}

// GetProduct retrieves a single product.
func (srv *productService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ProductRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to find product")
		}
		product = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// CreateProduct lists a new catalog item. When the product is attributed to a
// designer, the reference must name an existing designer identity.
func (srv *productService) CreateProduct(ctx context.Context, input usecase.CreateProductInput) (*entity.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("product name is required")
	}
	if input.Price < 0 {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("price must not be negative")
	}

	srv.logger.Info("Creating product", "name", input.Name)

	product := &entity.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		DesignerID:  input.DesignerID,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if input.DesignerID != nil {
			designer, err := repoFactory.IdentityRepo().FindByID(ctx, *input.DesignerID)
			if err != nil {
				if errors.Is(err, repository.ErrIdentityNotFound) {
					return domainerrors.ErrInvalidInput.WrapMessage("unknown designer")
				}

				return errors.Wrap(err, "failed to find designer")
			}
			if designer.Role != entity.RoleDesigner {
				return domainerrors.ErrInvalidInput.WrapMessage("referenced identity is not a designer")
			}
		}

		if err := repoFactory.ProductRepo().Create(ctx, product); err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		srv.logger.Warn("Product creation failed", "name", input.Name, "error", err)

		return nil, err
	}

	return product, nil
}

// UpdateProduct applies the given partial update to a product.
func (srv *productService) UpdateProduct(ctx context.Context, id uuid.UUID, input usecase.UpdateProductInput) (*entity.Product, error) {
	srv.logger.Info("Updating product", "productID", id)

	var product *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		found, err := productRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to find product")
		}

		if input.Name != nil {
			if strings.TrimSpace(*input.Name) == "" {
				return domainerrors.ErrInvalidInput.WrapMessage("product name is required")
			}
			found.Name = *input.Name
		}
		if input.Description != nil {
			found.Description = *input.Description
		}
		if input.Price != nil {
			if *input.Price < 0 {
				return domainerrors.ErrInvalidInput.WrapMessage("price must not be negative")
			}
			found.Price = *input.Price
		}
		if input.ImageURL != nil {
			found.ImageURL = *input.ImageURL
		}

		if err := productRepo.Update(ctx, found); err != nil {
			return errors.WithStack(err)
		}
		product = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes a catalog item.
func (srv *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	srv.logger.Info("Deleting product", "productID", id)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ProductRepo().Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	return nil
}
