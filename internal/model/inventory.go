package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// The record-keeping API stores amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Category is the closed set of inventory departments
type Category string

const (
	CategoryHardware   Category = "Hardware"
	CategoryTools      Category = "Tools"
	CategoryPaint      Category = "Paint"
	CategoryPaintTools Category = "Paint Tools"
)

// Categories lists every category in display order
var Categories = []Category{CategoryHardware, CategoryTools, CategoryPaint, CategoryPaintTools}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryHardware, CategoryTools, CategoryPaint, CategoryPaintTools:
		return true
	}
	return false
}

// PaintSection reports whether c belongs to the paint department
func (c Category) PaintSection() bool {
	return c == CategoryPaint || c == CategoryPaintTools
}

// InventoryItem is a stocked product as last fetched from the server
type InventoryItem struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	Category  Category        `json:"category"`
	Stock     int             `json:"stock"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	CreatedAt string          `json:"created_at,omitempty"`
	UpdatedAt string          `json:"updated_at,omitempty"`
}

// Validate runs the checks the inventory form performs before saving
func (i *InventoryItem) Validate() error {
	i.Name = strings.TrimSpace(i.Name)
	if i.Name == "" {
		return invalid("name", "Item name is required")
	}
	if !i.Category.Valid() {
		return invalid("category", "Unknown category "+string(i.Category))
	}
	if i.Stock < 0 {
		return invalid("stock", "Stock cannot be negative")
	}
	if i.UnitPrice.IsNegative() {
		return invalid("unitPrice", "Unit price cannot be negative")
	}
	return nil
}
