package handler

import (
	"log/slog"
	"net/http"

	"marketplace/internal/delivery/http/metrics"
	"marketplace/internal/delivery/http/response"
	"marketplace/internal/delivery/http/security"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CustomerHandler holds dependencies for customer account handlers.
type CustomerHandler struct {
	auth     usecase.AuthUsecase
	accounts usecase.AccountUsecase
	logger   *slog.Logger
}

// NewCustomerHandler is the constructor for CustomerHandler, injected by Fx.
func NewCustomerHandler(auth usecase.AuthUsecase, accounts usecase.AccountUsecase, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{auth: auth, accounts: accounts, logger: logger}
}

// CustomerCreateRequest is the customer self-registration body. The role is
// implied by the route.
type CustomerCreateRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	PaymentMethod string `json:"paymentMethod"`
}

// UpdateAccountRequest is the partial account update body. Absent fields are
// left untouched; a blank password keeps the stored hash.
type UpdateAccountRequest struct {
	FirstName     *string  `json:"firstName"`
	LastName      *string  `json:"lastName"`
	Password      *string  `json:"password"`
	PaymentMethod *string  `json:"paymentMethod"`
	Balance       *float64 `json:"balance"`
	PortfolioURL  *string  `json:"portfolioUrl"`
}

// Create registers a new customer account.
func (h *CustomerHandler) Create(c echo.Context) error {
	var req CustomerCreateRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.auth.Register(c.Request().Context(), usecase.RegisterInput{
		Email:         req.Email,
		Password:      req.Password,
		Role:          entity.RoleCustomer.String(),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return errors.WithStack(err)
	}
	metrics.RegistrationsTotal.WithLabelValues(entity.RoleCustomer.String()).Inc()

	return response.Success(c, http.StatusCreated, newAuthView(output), "Customer registered successfully")
}

// Login is the customer-facing login alias.
func (h *CustomerHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.auth.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()

		return errors.WithStack(err)
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return response.Success(c, http.StatusOK, newAuthView(output), "Login successful")
}

// Read returns one customer account. Customers may only read their own.
func (h *CustomerHandler) Read(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := requireSelfOrAdmin(c, id); err != nil {
		return err
	}

	identity, err := h.accounts.GetAccount(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newIdentityView(identity), "")
}

// Update applies a partial update to one customer account.
func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := requireSelfOrAdmin(c, id); err != nil {
		return err
	}

	var req UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid update input")
	}

	identity, err := h.accounts.UpdateAccount(c.Request().Context(), id, usecase.UpdateAccountInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Password:      req.Password,
		PaymentMethod: req.PaymentMethod,
		Balance:       req.Balance,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newIdentityView(identity), "Account updated")
}

// Delete removes one customer account.
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := requireSelfOrAdmin(c, id); err != nil {
		return err
	}

	if err := h.accounts.DeleteAccount(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Account deleted")
}

// GetAll returns every customer account. Admin only, enforced by the gate.
func (h *CustomerHandler) GetAll(c echo.Context) error {
	identities, err := h.accounts.ListAccountsByRole(c.Request().Context(), entity.RoleCustomer)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newIdentityViews(identities), "")
}

// FindByPaymentMethod filters customers by their preferred payment method.
func (h *CustomerHandler) FindByPaymentMethod(c echo.Context) error {
	paymentMethod := c.QueryParam("paymentMethod")
	if paymentMethod == "" {
		return domainerrors.ErrInvalidInput.WrapMessage("paymentMethod query parameter is required")
	}

	identities, err := h.accounts.FindCustomersByPaymentMethod(c.Request().Context(), paymentMethod)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newIdentityViews(identities), "")
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrInvalidInput.WrapMessage("invalid id")
	}

	return id, nil
}

// requireSelfOrAdmin lets a caller through when the target id is their own
// account or they hold the admin authority.
func requireSelfOrAdmin(c echo.Context, id uuid.UUID) error {
	principal, ok := security.Current(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}
	if principal.UserID == id || principal.Authority == entity.RoleAdmin.Authority() {
		return nil
	}

	return domainerrors.ErrForbidden.WrapMessage("account belongs to another identity")
}
