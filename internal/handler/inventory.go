package handler

import (
	"net/http"
	"strings"
	"time"

	"oak-ledger/internal/model"
	"oak-ledger/internal/window"
	"oak-ledger/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CategoryPaintSection selects Paint and Paint Tools together
const CategoryPaintSection = "paint-section"

// ListInventory handles the inventory screen with search, category and
// created-at period filters
func (h *Handler) ListInventory(c echo.Context) error {
	log := logger.FromContext(c)

	filter, err := periodFilter(c, window.All)
	if err != nil {
		return badRequest(c, err.Error())
	}
	category := strings.TrimSpace(c.QueryParam("category"))
	if category != "" && category != "all" && category != CategoryPaintSection && !model.Category(category).Valid() {
		return badRequest(c, "Unknown category "+category)
	}
	search := strings.ToLower(strings.TrimSpace(c.QueryParam("search")))

	now := h.store.Now()
	items := make([]model.InventoryItem, 0)
	for _, item := range h.store.Snapshot().Inventory {
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		if !matchCategory(item.Category, category) {
			continue
		}
		if !createdWithin(item.CreatedAt, now, filter) {
			continue
		}
		items = append(items, item)
	}

	log.Info("Inventory listed",
		zap.String("category", category),
		zap.String("period", string(filter.Window)),
		zap.Int("count", len(items)))
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

func matchCategory(c model.Category, filter string) bool {
	switch filter {
	case "", "all":
		return true
	case CategoryPaintSection:
		return c.PaintSection()
	}
	return string(c) == filter
}

// createdWithin applies a period filter to a server timestamp. Records the
// server never stamped always match.
func createdWithin(createdAt string, now time.Time, filter window.Filter) bool {
	if filter.Window == window.All || createdAt == "" {
		return true
	}
	date, ok := window.DateFromTimestamp(createdAt)
	if !ok {
		return true
	}
	return filter.Contains(date, now)
}

func (h *Handler) CreateInventoryItem(c echo.Context) error {
	var item model.InventoryItem
	if err := c.Bind(&item); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.store.AddInventoryItem(c.Request().Context(), item); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Inventory item added"})
}

func (h *Handler) UpdateInventoryItem(c echo.Context) error {
	id := c.Param("id")
	var item model.InventoryItem
	if err := c.Bind(&item); err != nil {
		return badRequest(c, "Invalid request body")
	}
	item.ID = id

	if err := h.store.UpdateInventoryItem(c.Request().Context(), item); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Inventory item updated"})
}

func (h *Handler) DeleteInventoryItem(c echo.Context) error {
	if err := h.store.DeleteInventoryItem(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Inventory item deleted"})
}
