package product

import "github.com/shopspring/decimal"

// Product represents a catalog entry and maps to the `products` table.
// Price is an exact decimal; cart and order lines snapshot it when they are
// created, so editing a product never rewrites history.
type Product struct {
	ID          int64           `json:"productId"`
	Name        string          `json:"productName"`
	Type        string          `json:"productType"`
	Price       decimal.Decimal `json:"productPrice"`
	Description string          `json:"productDesc,omitempty"`
	ImageRef    *string         `json:"imageRef,omitempty"`
}

// Sort keys accepted by Search and ListSorted.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
)
