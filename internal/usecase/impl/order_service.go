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

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		txManager: txManager,
		logger:    logger,
	}
}

// PlaceOrder creates a pending order for the given customer. The total is
// computed from the product's current listed price inside the same
// transaction, so a concurrent price change cannot split the two reads.
func (srv *orderService) PlaceOrder(ctx context.Context, customerID uuid.UUID, input usecase.PlaceOrderInput) (*entity.Order, error) {
	if input.Quantity <= 0 {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("quantity must be positive")
	}

	srv.logger.Info("Placing order", "customerID", customerID, "productID", input.ProductID)

	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		product, err := repoFactory.ProductRepo().FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to find product")
		}

		newOrder := &entity.Order{
			CustomerID:    customerID,
			ProductID:     product.ID,
			Quantity:      input.Quantity,
			Total:         product.Price * float64(input.Quantity),
			PaymentStatus: entity.PaymentPending,
		}

		if err := repoFactory.OrderRepo().Create(ctx, newOrder); err != nil {
			return errors.WithStack(err)
		}
		order = newOrder

		return nil
	})
	if err != nil {
		srv.logger.Warn("Order placement failed", "customerID", customerID, "error", err)

		return nil, err
	}

	return order, nil
}

// GetOrder retrieves a single order.
func (srv *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OrderRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to find order")
		}
		order = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// ListOrders returns every order in the system.
func (srv *orderService) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	var orders []*entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OrderRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list orders")
		}
		orders = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// ListCustomerOrders returns the given customer's orders.
func (srv *orderService) ListCustomerOrders(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error) {
	var orders []*entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OrderRepo().ListByCustomer(ctx, customerID)
		if err != nil {
			return errors.Wrap(err, "failed to list customer orders")
		}
		orders = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// UpdatePaymentStatus moves an order through its payment lifecycle.
func (srv *orderService) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("unknown payment status " + string(status))
	}

	srv.logger.Info("Updating order payment status", "orderID", id, "status", status)

	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		found, err := orderRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to find order")
		}

		found.PaymentStatus = status
		if err := orderRepo.Update(ctx, found); err != nil {
			return errors.WithStack(err)
		}
		order = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}
