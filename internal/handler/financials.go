package handler

import (
	"net/http"

	"oak-ledger/internal/ledger"
	"oak-ledger/internal/model"
	"oak-ledger/internal/window"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// DayFigures is the "today" strip at the top of the financials screen
type DayFigures struct {
	Date     string          `json:"date"`
	Sales    decimal.Decimal `json:"sales"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

// FinancialsView is the financials screen for one period
type FinancialsView struct {
	Today    DayFigures             `json:"today"`
	Filter   window.Filter          `json:"filter"`
	Sales    []model.Order          `json:"sales"`
	Expenses []model.Expense        `json:"expenses"`
	Totals   ledger.PeriodTotals    `json:"totals"`
	Daily    []model.DailyFinancial `json:"daily"`
}

// Financials handles the financials screen. period defaults to today; a
// custom period reads its bounds from start and end.
func (h *Handler) Financials(c echo.Context) error {
	filter, err := periodFilter(c, window.Today)
	if err != nil {
		return badRequest(c, err.Error())
	}

	snap := h.store.Snapshot()
	now := h.store.Now()
	today := window.Date(now)

	sales := ledger.FilteredSales(snap.Orders, now, filter)
	expenses := ledger.FilteredExpenses(snap.Expenses, now, filter)

	todaySales := ledger.TodaySales(snap.Orders, today)
	todayExpenses := ledger.TodayExpenses(snap.Expenses, today)

	return c.JSON(http.StatusOK, FinancialsView{
		Today: DayFigures{
			Date:     today,
			Sales:    todaySales,
			Expenses: todayExpenses,
			Profit:   ledger.NetProfit(todaySales, todayExpenses),
		},
		Filter:   filter,
		Sales:    sales,
		Expenses: expenses,
		Totals:   ledger.Totals(sales, expenses),
		Daily:    ledger.DailyFinancials(sales, expenses),
	})
}

// CreateExpense records an expense. Any role may do this.
func (h *Handler) CreateExpense(c echo.Context) error {
	var e model.Expense
	if err := c.Bind(&e); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.store.AddExpense(c.Request().Context(), e); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Expense recorded"})
}
