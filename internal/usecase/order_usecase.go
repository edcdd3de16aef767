// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
)

// PlaceOrderInput defines the data required to place an order.
// The total is computed server-side from the product's listed price.
type PlaceOrderInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// OrderUsecase defines the interface for order operations.
type OrderUsecase interface {
	PlaceOrder(ctx context.Context, customerID uuid.UUID, input PlaceOrderInput) (*entity.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	ListOrders(ctx context.Context) ([]*entity.Order, error)
	ListCustomerOrders(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) (*entity.Order, error)
}
