// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateReviewInput defines the data required to post a review.
type CreateReviewInput struct {
	ProductID uuid.UUID
	Rating    int
	Comment   string
}

// UpdateReviewInput carries the mutable review fields. Nil pointers leave
// the stored value untouched.
type UpdateReviewInput struct {
	Rating  *int
	Comment *string
}

// ReviewUsecase defines the interface for review operations.
// Mutations are owner-scoped; deletion is additionally open to admins.
type ReviewUsecase interface {
	CreateReview(ctx context.Context, customerID uuid.UUID, input CreateReviewInput) (*entity.Review, error)
	GetReview(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	ListReviews(ctx context.Context) ([]*entity.Review, error)
	ListProductReviews(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)
	UpdateReview(ctx context.Context, id, requesterID uuid.UUID, input UpdateReviewInput) (*entity.Review, error)
	DeleteReview(ctx context.Context, id, requesterID uuid.UUID, requesterRole entity.Role) error
}
