package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OrderType distinguishes stock leaving the shop from stock arriving
type OrderType string

const (
	OrderSale    OrderType = "sale"
	OrderRestock OrderType = "restock"
)

// Valid reports whether t is sale or restock
func (t OrderType) Valid() bool {
	return t == OrderSale || t == OrderRestock
}

// Order is an immutable sale or restock record. ItemName and TotalPrice are
// captured when the order is placed and never recomputed.
type Order struct {
	ID         string          `json:"id,omitempty"`
	Type       OrderType       `json:"type"`
	ItemID     string          `json:"itemId"`
	ItemName   string          `json:"itemName"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Date       string          `json:"date"`
	CreatedAt  string          `json:"created_at,omitempty"`
}

// OrderDraft is what the order form submits
type OrderDraft struct {
	Type     OrderType `json:"type"`
	ItemID   string    `json:"itemId"`
	Quantity int       `json:"quantity"`
}

// NewOrder prices a draft against the cached item. A sale may not exceed the
// stock the client currently knows about.
func NewOrder(item InventoryItem, typ OrderType, quantity int, date string) (Order, error) {
	if !typ.Valid() {
		return Order{}, invalid("type", fmt.Sprintf("Unknown order type %q", typ))
	}
	if quantity < 1 {
		return Order{}, invalid("quantity", "Quantity must be at least 1")
	}
	if typ == OrderSale && quantity > item.Stock {
		return Order{}, invalid("quantity", "Insufficient stock")
	}

	return Order{
		Type:       typ,
		ItemID:     item.ID,
		ItemName:   item.Name,
		Quantity:   quantity,
		TotalPrice: item.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		Date:       date,
	}, nil
}
