package cart

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("cart not found")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
)

// Cart is the per-customer staging area. At most one exists per customer;
// it is created lazily on the first add.
type Cart struct {
	ID         int64     `json:"cartId"`
	CustomerID int64     `json:"custNum"`
	CreatedAt  time.Time `json:"createdDate"`
	UpdatedAt  time.Time `json:"updatedDate"`
}

// Item is a cart line. It references the cart by id rather than holding a
// live parent pointer; the cart's item list is always a query. UnitPrice is
// the catalog price captured when the product was first added.
type Item struct {
	ID          int64           `json:"cartItemId"`
	CartID      int64           `json:"cartId"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Subtotal is unit price times quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// View is what the cart endpoints return: the cart, its lines and the
// derived totals.
type View struct {
	Cart        *Cart           `json:"cart,omitempty"`
	Items       []Item          `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalItems  int             `json:"totalItems"`
}

// Totals sums the item subtotals and quantities.
func Totals(items []Item) (decimal.Decimal, int) {
	amount := decimal.Zero
	count := 0
	for _, it := range items {
		amount = amount.Add(it.Subtotal())
		count += it.Quantity
	}
	return amount, count
}
