package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          string          `json:"id,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	CreatedAt   string          `json:"created_at,omitempty"`
}

// Validate requires a description and a non-negative amount
func (e *Expense) Validate() error {
	e.Description = strings.TrimSpace(e.Description)
	if e.Description == "" || e.Amount.IsNegative() {
		return invalid("", "Fill in all fields")
	}
	return nil
}

// DailyFinancial is one day of the profit series
type DailyFinancial struct {
	Date          string          `json:"date"`
	TotalSales    decimal.Decimal `json:"totalSales"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Profit        decimal.Decimal `json:"profit"`
}
