package handler

import (
	"log/slog"
	"net/http"

	"marketplace/internal/delivery/http/response"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DesignerHandler holds dependencies for designer account handlers.
type DesignerHandler struct {
	designers usecase.DesignerUsecase
	accounts  usecase.AccountUsecase
	logger    *slog.Logger
}

// NewDesignerHandler is the constructor for DesignerHandler, injected by Fx.
func NewDesignerHandler(designers usecase.DesignerUsecase, accounts usecase.AccountUsecase, logger *slog.Logger) *DesignerHandler {
	return &DesignerHandler{designers: designers, accounts: accounts, logger: logger}
}

// GetAll returns every designer account.
func (h *DesignerHandler) GetAll(c echo.Context) error {
	identities, err := h.designers.ListDesigners(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newIdentityViews(identities), "")
}

// Read returns one designer account. Designers may only read their own.
func (h *DesignerHandler) Read(c echo.Context) error {
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

// Update applies a partial update to one designer account.
func (h *DesignerHandler) Update(c echo.Context) error {
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
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Password:     req.Password,
		PortfolioURL: req.PortfolioURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newIdentityView(identity), "Account updated")
}

// PortfolioQR streams the designer's portfolio link as a PNG QR code.
func (h *DesignerHandler) PortfolioQR(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	png, err := h.designers.PortfolioQR(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
