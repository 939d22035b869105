package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) ListNotifications(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"notifications": h.notices.List()})
}

func (h *Handler) DismissNotification(c echo.Context) error {
	if !h.notices.Dismiss(c.Param("id")) {
		return notFound(c, "Notification")
	}
	return c.NoContent(http.StatusNoContent)
}

// Refresh reloads all four collections on demand
func (h *Handler) Refresh(c echo.Context) error {
	if err := h.store.Refresh(c.Request().Context()); err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Failed to load the latest records"})
	}
	snap := h.store.Snapshot()
	return c.JSON(http.StatusOK, echo.Map{
		"generation": snap.Generation,
		"fetchedAt":  snap.FetchedAt,
	})
}

// Health handles health check requests
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
