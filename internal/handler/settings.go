package handler

import (
	"errors"
	"net/http"

	mid "oak-ledger/internal/middleware"
	"oak-ledger/internal/model"
	"oak-ledger/internal/session"
	"oak-ledger/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RoleRequest switches between the admin and viewer role
type RoleRequest struct {
	Role string `json:"role"`
}

// Login exchanges credentials for a session and loads the records
func (h *Handler) Login(c echo.Context) error {
	log := logger.FromContext(c)

	var creds model.Credentials
	if err := c.Bind(&creds); err != nil {
		return badRequest(c, "Invalid request body")
	}

	ctx := c.Request().Context()
	if err := h.app.Login(ctx, h.accounts, creds); err != nil {
		return respondError(c, err)
	}

	if err := h.store.Refresh(ctx); err != nil {
		log.Warn("Logged in but the first load failed", zap.Error(err))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Logged in",
		"email":   h.app.Identity(),
		"role":    h.app.Role(),
	})
}

// Logout ends the session and drops everything cached for it
func (h *Handler) Logout(c echo.Context) error {
	if err := h.app.Logout(c.Request().Context()); err != nil {
		return respondError(c, err)
	}
	h.store.Reset()
	h.notices.Clear()
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out", "redirect": mid.LoginPath})
}

// Settings shows the account and the role flag
func (h *Handler) Settings(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"email":             h.app.Identity(),
		"role":              h.app.Role(),
		"isAdmin":           h.app.IsAdmin(),
		"consistencyPolicy": h.store.Policy().Name(),
	})
}

// SetRole toggles the admin flag
func (h *Handler) SetRole(c echo.Context) error {
	var req RoleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	switch req.Role {
	case session.RoleAdmin:
		h.app.SetAdmin(true)
	case session.RoleViewer:
		h.app.SetAdmin(false)
	default:
		return badRequest(c, "Role must be admin or viewer")
	}

	logger.FromContext(c).Info("Role changed", zap.String("role", req.Role))
	return c.JSON(http.StatusOK, echo.Map{"role": h.app.Role(), "isAdmin": h.app.IsAdmin()})
}

// UpdateAccount changes the signed-in account's email or password. A
// rejection is a form error, not a lost session.
func (h *Handler) UpdateAccount(c echo.Context) error {
	var upd model.AccountUpdate
	if err := c.Bind(&upd); err != nil {
		return badRequest(c, "Invalid request body")
	}

	msg, err := h.app.UpdateAccount(c.Request().Context(), h.accounts, upd)
	var aerr *session.AuthError
	if errors.As(err, &aerr) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": aerr.Message})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": msg})
}
