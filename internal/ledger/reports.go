package ledger

import (
	"sort"

	"oak-ledger/internal/model"

	"github.com/shopspring/decimal"
)

// DailyFinancials buckets sales and expenses per date, ascending.
// Restock orders carry no revenue and are skipped.
func DailyFinancials(orders []model.Order, expenses []model.Expense) []model.DailyFinancial {
	byDate := make(map[string]*model.DailyFinancial)
	day := func(date string) *model.DailyFinancial {
		d, ok := byDate[date]
		if !ok {
			d = &model.DailyFinancial{Date: date, TotalSales: decimal.Zero, TotalExpenses: decimal.Zero}
			byDate[date] = d
		}
		return d
	}

	for _, o := range orders {
		if o.Type != model.OrderSale {
			continue
		}
		d := day(o.Date)
		d.TotalSales = d.TotalSales.Add(o.TotalPrice)
	}
	for _, e := range expenses {
		d := day(e.Date)
		d.TotalExpenses = d.TotalExpenses.Add(e.Amount)
	}

	out := make([]model.DailyFinancial, 0, len(byDate))
	for _, d := range byDate {
		d.Profit = NetProfit(d.TotalSales, d.TotalExpenses)
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// PeriodTotals sums an already filtered set of sales and expenses
type PeriodTotals struct {
	Sales     decimal.Decimal `json:"sales"`
	Expenses  decimal.Decimal `json:"expenses"`
	Profit    decimal.Decimal `json:"profit"`
	UnitsSold int             `json:"unitsSold"`
}

// Totals adds up the sales and expenses of one filtered period
func Totals(sales []model.Order, expenses []model.Expense) PeriodTotals {
	t := PeriodTotals{Sales: decimal.Zero, Expenses: decimal.Zero}
	for _, o := range sales {
		t.Sales = t.Sales.Add(o.TotalPrice)
		t.UnitsSold += o.Quantity
	}
	for _, e := range expenses {
		t.Expenses = t.Expenses.Add(e.Amount)
	}
	t.Profit = NetProfit(t.Sales, t.Expenses)
	return t
}

// CategoryStock is one department's share of the stock room
type CategoryStock struct {
	Category model.Category  `json:"category"`
	Items    int             `json:"items"`
	Stock    int             `json:"stock"`
	Value    decimal.Decimal `json:"value"`
	LowStock int             `json:"lowStock"`
}

// GroupByCategory reports stock per category in model.Categories order.
// Categories with no items are included with zero counts.
func GroupByCategory(items []model.InventoryItem) []CategoryStock {
	index := make(map[model.Category]int, len(model.Categories))
	out := make([]CategoryStock, 0, len(model.Categories))
	for i, c := range model.Categories {
		index[c] = i
		out = append(out, CategoryStock{Category: c, Value: decimal.Zero})
	}

	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			continue
		}
		cs := &out[i]
		cs.Items++
		cs.Stock += item.Stock
		cs.Value = cs.Value.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Stock))))
		if item.Stock < LowStockThreshold {
			cs.LowStock++
		}
	}
	return out
}
