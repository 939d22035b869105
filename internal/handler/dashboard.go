package handler

import (
	"net/http"

	"oak-ledger/internal/ledger"
	"oak-ledger/internal/store"
	"oak-ledger/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DashboardView is the home screen
type DashboardView struct {
	ledger.Summary
	Profitable        bool                        `json:"profitable"`
	LowStockThreshold int                         `json:"lowStockThreshold"`
	Categories        []ledger.CategoryStock      `json:"categories"`
	Role              string                      `json:"role"`
	States            map[store.Collection]string `json:"states"`
}

// Dashboard shows today's figures and the low stock alerts
func (h *Handler) Dashboard(c echo.Context) error {
	snap := h.store.Snapshot()
	sum := h.store.SummaryOf(snap)

	states := make(map[store.Collection]string, len(store.AllCollections))
	for coll, st := range h.store.States() {
		states[coll] = st.String()
	}

	logger.FromContext(c).Debug("Dashboard computed",
		zap.String("date", sum.Date),
		zap.Int("low_stock", len(sum.LowStock)))

	return c.JSON(http.StatusOK, DashboardView{
		Summary:           sum,
		Profitable:        sum.Profitable(),
		LowStockThreshold: ledger.LowStockThreshold,
		Categories:        ledger.GroupByCategory(snap.Inventory),
		Role:              h.app.Role(),
		States:            states,
	})
}
