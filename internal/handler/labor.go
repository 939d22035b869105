package handler

import (
	"net/http"
	"strings"

	"oak-ledger/internal/model"
	"oak-ledger/internal/window"

	"github.com/labstack/echo/v4"
)

// ListLaborers handles the labor screen. search matches name or skill.
func (h *Handler) ListLaborers(c echo.Context) error {
	filter, err := periodFilter(c, window.All)
	if err != nil {
		return badRequest(c, err.Error())
	}
	status := c.QueryParam("status")
	if status != "" && status != "all" && !model.LaborStatus(status).Valid() {
		return badRequest(c, "Unknown status "+status)
	}
	search := strings.ToLower(strings.TrimSpace(c.QueryParam("search")))

	now := h.store.Now()
	out := make([]model.Laborer, 0)
	for _, l := range h.store.Snapshot().Laborers {
		if search != "" &&
			!strings.Contains(strings.ToLower(l.Name), search) &&
			!strings.Contains(strings.ToLower(l.Skill), search) {
			continue
		}
		if status != "" && status != "all" && l.Status != model.LaborStatus(status) {
			continue
		}
		if !createdWithin(l.CreatedAt, now, filter) {
			continue
		}
		out = append(out, l)
	}
	return c.JSON(http.StatusOK, echo.Map{"laborers": out, "count": len(out)})
}

// LaborHistory returns a worker's past assignments
func (h *Handler) LaborHistory(c echo.Context) error {
	l, ok := h.store.FindLaborer(c.Param("id"))
	if !ok {
		return notFound(c, "Worker")
	}
	history := l.History
	if history == nil {
		history = []model.LaborHistory{}
	}
	return c.JSON(http.StatusOK, echo.Map{"laborer": l.Name, "history": history})
}

func (h *Handler) CreateLaborer(c echo.Context) error {
	var l model.Laborer
	if err := c.Bind(&l); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.store.AddLaborer(c.Request().Context(), l); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Worker added"})
}

func (h *Handler) UpdateLaborer(c echo.Context) error {
	id := c.Param("id")
	var l model.Laborer
	if err := c.Bind(&l); err != nil {
		return badRequest(c, "Invalid request body")
	}
	l.ID = id

	if err := h.store.UpdateLaborer(c.Request().Context(), l); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Worker updated"})
}

func (h *Handler) DeleteLaborer(c echo.Context) error {
	if err := h.store.DeleteLaborer(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Worker removed"})
}
