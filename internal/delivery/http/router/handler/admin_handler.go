package handler

import (
	"log/slog"
	"net/http"

	"marketplace/internal/delivery/http/response"
	"marketplace/internal/domain/entity"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for the admin back-office handlers. Every
// route it serves sits behind the admin-only gate rule.
type AdminHandler struct {
	accounts usecase.AccountUsecase
	logger   *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(accounts usecase.AccountUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{accounts: accounts, logger: logger}
}

// GetAll returns every admin account.
func (h *AdminHandler) GetAll(c echo.Context) error {
	identities, err := h.accounts.ListAccountsByRole(c.Request().Context(), entity.RoleAdmin)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newIdentityViews(identities), "")
}

// Read returns any account by id, regardless of role.
func (h *AdminHandler) Read(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	identity, err := h.accounts.GetAccount(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newIdentityView(identity), "")
}

// Delete removes any account by id.
func (h *AdminHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.accounts.DeleteAccount(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Account deleted")
}
