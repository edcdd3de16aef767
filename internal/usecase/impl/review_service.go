// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.ReviewUsecase {
	return &reviewService{
		txManager: txManager,
		logger:    logger,
	}
}

func validRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

// CreateReview posts a new review against an existing product.
func (srv *reviewService) CreateReview(ctx context.Context, customerID uuid.UUID, input usecase.CreateReviewInput) (*entity.Review, error) {
	if !validRating(input.Rating) {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("rating must be between 1 and 5")
	}

	srv.logger.Info("Creating review", "customerID", customerID, "productID", input.ProductID)

	review := &entity.Review{
		ProductID:  input.ProductID,
		CustomerID: customerID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.ProductRepo().FindByID(ctx, input.ProductID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to find product")
		}

		if err := repoFactory.ReviewRepo().Create(ctx, review); err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		srv.logger.Warn("Review creation failed", "customerID", customerID, "error", err)

		return nil, err
	}

	return review, nil
}

// GetReview retrieves a single review.
func (srv *reviewService) GetReview(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var review *entity.Review

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ReviewRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				return domainerrors.ErrReviewNotFound
			}

			return errors.Wrap(err, "failed to find review")
		}
		review = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

// ListReviews returns every review in the system.
func (srv *reviewService) ListReviews(ctx context.Context) ([]*entity.Review, error) {
	var reviews []*entity.Review

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ReviewRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list reviews")
		}
		reviews = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

// ListProductReviews returns the reviews posted against one product.
func (srv *reviewService) ListProductReviews(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	var reviews []*entity.Review

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ReviewRepo().ListByProduct(ctx, productID)
		if err != nil {
			return errors.Wrap(err, "failed to list product reviews")
		}
		reviews = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

// UpdateReview applies the given partial update. Only the review's author may
// modify it.
func (srv *reviewService) UpdateReview(ctx context.Context, id, requesterID uuid.UUID, input usecase.UpdateReviewInput) (*entity.Review, error) {
	srv.logger.Info("Updating review", "reviewID", id, "requesterID", requesterID)

	var review *entity.Review

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()

		found, err := reviewRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				return domainerrors.ErrReviewNotFound
			}

			return errors.Wrap(err, "failed to find review")
		}

		if found.CustomerID != requesterID {
			return domainerrors.ErrForbidden.WrapMessage("review belongs to another customer")
		}

		if input.Rating != nil {
			if !validRating(*input.Rating) {
				return domainerrors.ErrInvalidInput.WrapMessage("rating must be between 1 and 5")
			}
			found.Rating = *input.Rating
		}
		if input.Comment != nil {
			found.Comment = *input.Comment
		}

		if err := reviewRepo.Update(ctx, found); err != nil {
			return errors.WithStack(err)
		}
		review = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

// DeleteReview removes a review. The author may delete their own review;
// admins may delete any review.
func (srv *reviewService) DeleteReview(ctx context.Context, id, requesterID uuid.UUID, requesterRole entity.Role) error {
	srv.logger.Info("Deleting review", "reviewID", id, "requesterID", requesterID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()

		found, err := reviewRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				return domainerrors.ErrReviewNotFound
			}

			return errors.Wrap(err, "failed to find review")
		}

		if found.CustomerID != requesterID && requesterRole != entity.RoleAdmin {
			return domainerrors.ErrForbidden.WrapMessage("review belongs to another customer")
		}

		if err := reviewRepo.Delete(ctx, id); err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	return nil
}
