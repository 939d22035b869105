// Package ledger derives the dashboard and financial figures from the cached
// collections. Every function is a pure reduction over its arguments.
package ledger

import (
	"time"

	"oak-ledger/internal/model"
	"oak-ledger/internal/window"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock count below which an item is flagged
const LowStockThreshold = 5

// TotalStock sums stock over all items
func TotalStock(items []model.InventoryItem) int {
	total := 0
	for _, item := range items {
		total += item.Stock
	}
	return total
}

// LowStock returns the items with stock strictly below LowStockThreshold,
// in input order
func LowStock(items []model.InventoryItem) []model.InventoryItem {
	low := make([]model.InventoryItem, 0)
	for _, item := range items {
		if item.Stock < LowStockThreshold {
			low = append(low, item)
		}
	}
	return low
}

// TodaySales sums totalPrice over sale orders dated today
func TodaySales(orders []model.Order, today string) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.Type == model.OrderSale && o.Date == today {
			total = total.Add(o.TotalPrice)
		}
	}
	return total
}

// TodayExpenses sums amount over expenses dated today
func TodayExpenses(expenses []model.Expense, today string) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.Date == today {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// ItemsSoldToday sums quantity over sale orders dated today
func ItemsSoldToday(orders []model.Order, today string) int {
	total := 0
	for _, o := range orders {
		if o.Type == model.OrderSale && o.Date == today {
			total += o.Quantity
		}
	}
	return total
}

// NetProfit is sales minus expenses. It may be negative.
func NetProfit(sales, expenses decimal.Decimal) decimal.Decimal {
	return sales.Sub(expenses)
}

// FilteredSales returns the sale orders whose date falls inside f
func FilteredSales(orders []model.Order, now time.Time, f window.Filter) []model.Order {
	out := make([]model.Order, 0)
	for _, o := range orders {
		if o.Type == model.OrderSale && f.Contains(o.Date, now) {
			out = append(out, o)
		}
	}
	return out
}

// FilteredExpenses returns the expenses whose date falls inside f
func FilteredExpenses(expenses []model.Expense, now time.Time, f window.Filter) []model.Expense {
	out := make([]model.Expense, 0)
	for _, e := range expenses {
		if f.Contains(e.Date, now) {
			out = append(out, e)
		}
	}
	return out
}

// Summary is the dashboard's set of figures for one day
type Summary struct {
	Date           string                `json:"date"`
	TotalStock     int                   `json:"totalStock"`
	ItemsSoldToday int                   `json:"itemsSoldToday"`
	TodaySales     decimal.Decimal       `json:"todaySales"`
	TodayExpenses  decimal.Decimal       `json:"todayExpenses"`
	NetProfit      decimal.Decimal       `json:"netProfit"`
	LowStock       []model.InventoryItem `json:"lowStock"`
}

// Profitable reports whether the day closed at or above zero
func (s Summary) Profitable() bool {
	return !s.NetProfit.IsNegative()
}

// Summarize computes every dashboard figure for today
func Summarize(items []model.InventoryItem, orders []model.Order, expenses []model.Expense, today string) Summary {
	sales := TodaySales(orders, today)
	spent := TodayExpenses(expenses, today)
	return Summary{
		Date:           today,
		TotalStock:     TotalStock(items),
		ItemsSoldToday: ItemsSoldToday(orders, today),
		TodaySales:     sales,
		TodayExpenses:  spent,
		NetProfit:      NetProfit(sales, spent),
		LowStock:       LowStock(items),
	}
}
