package handler

import (
	"net/http"

	"oak-ledger/internal/model"
	"oak-ledger/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StoreName is printed at the top of every receipt
const StoreName = "Oak Woods"

// Receipt is the printable record of one order
type Receipt struct {
	Store      string          `json:"store"`
	OrderID    string          `json:"orderId"`
	Date       string          `json:"date"`
	Type       model.OrderType `json:"type"`
	ItemName   string          `json:"itemName"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// ListOrders handles the orders screen, filtered by type
func (h *Handler) ListOrders(c echo.Context) error {
	typ := c.QueryParam("type")
	if typ != "" && typ != "all" && !model.OrderType(typ).Valid() {
		return badRequest(c, "Unknown order type "+typ)
	}

	orders := make([]model.Order, 0)
	for _, o := range h.store.Snapshot().Orders {
		if typ == "" || typ == "all" || o.Type == model.OrderType(typ) {
			orders = append(orders, o)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders, "count": len(orders)})
}

// CreateOrder places a sale or restock from the order form draft
func (h *Handler) CreateOrder(c echo.Context) error {
	log := logger.FromContext(c)

	var draft model.OrderDraft
	if err := c.Bind(&draft); err != nil {
		return badRequest(c, "Invalid request body")
	}

	order, err := h.store.AddOrder(c.Request().Context(), draft)
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Order placed",
		zap.String("type", string(order.Type)),
		zap.String("item_id", order.ItemID),
		zap.Int("quantity", order.Quantity))
	return c.JSON(http.StatusCreated, echo.Map{"message": "Order recorded", "order": order})
}

// Receipt returns the printable receipt for an order
func (h *Handler) Receipt(c echo.Context) error {
	order, ok := h.store.FindOrder(c.Param("id"))
	if !ok {
		return notFound(c, "Order")
	}

	unit := decimal.Zero
	if order.Quantity > 0 {
		unit = order.TotalPrice.Div(decimal.NewFromInt(int64(order.Quantity)))
	}
	return c.JSON(http.StatusOK, Receipt{
		Store:      StoreName,
		OrderID:    order.ID,
		Date:       order.Date,
		Type:       order.Type,
		ItemName:   order.ItemName,
		Quantity:   order.Quantity,
		UnitPrice:  unit,
		TotalPrice: order.TotalPrice,
	})
}
