package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrIllegalTransition = errors.New("order already shipped, delivered or cancelled")
)

// Order is the immutable record of a checkout. The item set and the
// recipient fields never change after creation; only Status and UpdatedAt
// move over the order's life.
type Order struct {
	ID              int64           `json:"orderId"`
	Number          string          `json:"orderNumber"`
	CustomerID      int64           `json:"custNum"`
	Items           []Item          `json:"items,omitempty"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          Status          `json:"orderStatus"`
	RecipientName   string          `json:"recipientName"`
	RecipientPhone  string          `json:"recipientPhone"`
	ShippingAddress string          `json:"shippingAddress"`
	Note            string          `json:"orderNote,omitempty"`
	CreatedAt       time.Time       `json:"createdDate"`
	UpdatedAt       time.Time       `json:"updatedDate"`
}

// Item is an order line. ProductName and UnitPrice are snapshots taken at
// order time; editing or deleting the product later never changes them.
type Item struct {
	ID          int64           `json:"orderItemId"`
	OrderID     int64           `json:"orderId"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Subtotal is unit price times quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// TotalOf sums the line subtotals.
func TotalOf(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// NewNumber builds a human-facing order number. The uuid fragment keeps it
// unique when two orders land on the same millisecond.
func NewNumber(now time.Time) string {
	return fmt.Sprintf("ORD%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}
