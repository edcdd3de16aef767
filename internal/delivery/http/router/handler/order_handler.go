package handler

import (
	"log/slog"
	"net/http"

	"marketplace/internal/delivery/http/response"
	"marketplace/internal/delivery/http/security"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: logger}
}

// CreateOrderRequest is the order placement body. The customer id comes from
// the caller's token, never from the body.
type CreateOrderRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// UpdatePaymentStatusRequest moves an order through its payment lifecycle.
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" validate:"required"`
}

// Create places a new order for the authenticated customer.
func (h *OrderHandler) Create(c echo.Context) error {
	principal, ok := security.Current(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.uc.PlaceOrder(c.Request().Context(), principal.UserID, usecase.PlaceOrderInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newOrderView(order), "Order placed")
}

// Read returns one order. Customers may only read their own orders.
func (h *OrderHandler) Read(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	order, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := requireSelfOrAdmin(c, order.CustomerID); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, newOrderView(order), "")
}

// My returns the authenticated customer's orders.
func (h *OrderHandler) My(c echo.Context) error {
	principal, ok := security.Current(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	orders, err := h.uc.ListCustomerOrders(c.Request().Context(), principal.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newOrderViews(orders), "")
}

// All returns every order. Admin only, enforced by the gate.
func (h *OrderHandler) All(c echo.Context) error {
	orders, err := h.uc.ListOrders(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newOrderViews(orders), "")
}

// UpdatePaymentStatus updates an order's payment status. Admin only.
func (h *OrderHandler) UpdatePaymentStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdatePaymentStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment status input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.uc.UpdatePaymentStatus(c.Request().Context(), id, entity.PaymentStatus(req.PaymentStatus))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newOrderView(order), "Payment status updated")
}
