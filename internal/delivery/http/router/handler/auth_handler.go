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

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

// RegisterRequest is the self-registration request body.
type RegisterRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required"`
	Role          string `json:"role" validate:"required"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	PaymentMethod string `json:"paymentMethod"`
	PortfolioURL  string `json:"portfolioUrl"`
}

// LoginRequest is the login request body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles public self-registration for customers and designers.
// Admin accounts are only created through the gated admin route.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	role, ok := entity.ParseRole(req.Role)
	if !ok {
		return domainerrors.ErrInvalidRole
	}
	if role == entity.RoleAdmin {
		return domainerrors.ErrForbidden.WrapMessage("admin accounts cannot self-register")
	}

	return h.register(c, req, role)
}

// Login handles the login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
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

// Me resolves the caller's token back to the identity it names.
func (h *AuthHandler) Me(c echo.Context) error {
	principal, ok := security.Current(c)
	if !ok {
		// The gate keeps anonymous callers out of this route; a missing
		// principal here means the route table is broken.
		return domainerrors.ErrUnauthorized
	}

	summary, err := h.uc.CurrentIdentity(c.Request().Context(), principal.Subject)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newSummaryView(summary), "")
}

// AdminRegister creates an admin account. The gate restricts the route to
// existing admins; the first admin is seeded out of band.
func (h *AuthHandler) AdminRegister(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	req.Role = entity.RoleAdmin.String()
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	return h.register(c, req, entity.RoleAdmin)
}

// register runs the shared registration path once the role is settled.
func (h *AuthHandler) register(c echo.Context, req RegisterRequest, role entity.Role) error {
	output, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Email:         req.Email,
		Password:      req.Password,
		Role:          role.String(),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		PaymentMethod: req.PaymentMethod,
		PortfolioURL:  req.PortfolioURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}
	metrics.RegistrationsTotal.WithLabelValues(role.String()).Inc()

	return response.Success(c, http.StatusCreated, newAuthView(output), "Registered successfully")
}
