// Package handler serves the dashboard screens as JSON documents.
package handler

import (
	"context"
	"errors"
	"net/http"

	mid "oak-ledger/internal/middleware"
	"oak-ledger/internal/model"
	"oak-ledger/internal/notify"
	"oak-ledger/internal/session"
	"oak-ledger/internal/store"
	"oak-ledger/internal/window"
	"oak-ledger/pkg/ledgerapi"
	"oak-ledger/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ReportExporter builds the spreadsheet exports
type ReportExporter interface {
	ExportReport(ctx context.Context, req model.ReportRequest) (*ledgerapi.Report, error)
}

// Handler holds everything the screens read from or write to
type Handler struct {
	app      *session.AppContext
	store    *store.Store
	accounts session.Authenticator
	reports  ReportExporter
	notices  *notify.Center
}

func New(app *session.AppContext, st *store.Store, accounts session.Authenticator, reports ReportExporter, notices *notify.Center) *Handler {
	return &Handler{
		app:      app,
		store:    st,
		accounts: accounts,
		reports:  reports,
		notices:  notices,
	}
}

// Register mounts every screen on e
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.POST("/login", h.Login)

	api := e.Group("", mid.RequireSession(h.app))
	admin := mid.RequireAdmin(h.app)

	api.POST("/logout", h.Logout)
	api.GET("/dashboard", h.Dashboard)
	api.POST("/refresh", h.Refresh)

	api.GET("/inventory", h.ListInventory)
	api.POST("/inventory", h.CreateInventoryItem, admin)
	api.PUT("/inventory/:id", h.UpdateInventoryItem, admin)
	api.DELETE("/inventory/:id", h.DeleteInventoryItem, admin)

	api.GET("/orders", h.ListOrders)
	api.POST("/orders", h.CreateOrder, admin)
	api.GET("/orders/:id/receipt", h.Receipt)

	api.GET("/laborers", h.ListLaborers)
	api.POST("/laborers", h.CreateLaborer, admin)
	api.PUT("/laborers/:id", h.UpdateLaborer, admin)
	api.DELETE("/laborers/:id", h.DeleteLaborer, admin)
	api.GET("/laborers/:id/history", h.LaborHistory)

	api.GET("/financials", h.Financials)
	api.POST("/expenses", h.CreateExpense)

	api.GET("/settings", h.Settings)
	api.PUT("/settings/role", h.SetRole)
	api.POST("/settings/account", h.UpdateAccount)

	api.POST("/reports/export", h.ExportReport)

	api.GET("/notifications", h.ListNotifications)
	api.DELETE("/notifications/:id", h.DismissNotification)
}

// respondError maps the error taxonomy onto HTTP answers
func respondError(c echo.Context, err error) error {
	log := logger.FromContext(c)

	var verr *model.ValidationError
	var werr *store.RemoteWriteError
	var aerr *session.AuthError
	var apiErr *ledgerapi.APIError

	switch {
	case errors.As(err, &verr):
		log.Info("Rejected invalid input", zap.String("field", verr.Field), zap.String("message", verr.Message))
		body := echo.Map{"error": verr.Message}
		if verr.Field != "" {
			body["field"] = verr.Field
		}
		return c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, store.ErrNotAuthenticated):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Please log in to continue", "redirect": mid.LoginPath})
	case errors.As(err, &werr):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": werr.Message()})
	case errors.As(err, &aerr):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": aerr.Message})
	case errors.As(err, &apiErr):
		log.Error("Record-keeping API error", zap.Error(err))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": apiErr.Message})
	}

	log.Error("Unhandled error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
}

// periodFilter reads period, and for a custom period its start and end bounds
func periodFilter(c echo.Context, fallback window.Window) (window.Filter, error) {
	period, err := window.Parse(c.QueryParam("period"), fallback)
	if err != nil {
		return window.Filter{}, err
	}
	filter := window.Filter{Window: period}
	if period == window.Custom {
		filter.Range = window.Range{Start: c.QueryParam("start"), End: c.QueryParam("end")}
		if err := filter.Range.Validate(); err != nil {
			return window.Filter{}, err
		}
	}
	return filter, nil
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": message})
}

func notFound(c echo.Context, what string) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": what + " not found"})
}
