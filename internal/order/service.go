package order

import (
	"time"

	"github.com/chiayulin/shopmart-backend/internal/cart"
	"github.com/chiayulin/shopmart-backend/internal/customer"
	"github.com/chiayulin/shopmart-backend/internal/product"
)

// Carts is the slice of the cart manager the order engine consumes: the
// customer's cart with its lines, nil when no cart exists yet.
type Carts interface {
	Find(customerID int64) (*cart.Cart, []cart.Item, error)
}

// Customers resolves customer ids; not-found is a distinguishable error.
type Customers interface {
	GetByID(id int64) (customer.Customer, error)
}

// Products resolves product ids for the name snapshot at order time.
type Products interface {
	GetByID(id int64) (product.Product, error)
}

// Service owns the cart-to-order transition and the status lifecycle.
type Service struct {
	repo      Repository
	carts     Carts
	customers Customers
	products  Products
}

func NewService(repo Repository, carts Carts, customers Customers, products Products) *Service {
	return &Service{repo: repo, carts: carts, customers: customers, products: products}
}

// CreateFromCart converts the customer's cart into an order. Every cart
// line becomes an order line snapshotting the product's current display
// name and the unit price the cart captured (not the live catalog price).
// The order insert and the cart clear commit or fail as one unit; on any
// failure the cart is left untouched and no order survives.
func (s *Service) CreateFromCart(customerID int64, recipientName, recipientPhone, shippingAddress, note string) (*Order, error) {
	if _, err := s.customers.GetByID(customerID); err != nil {
		return nil, err
	}

	c, cartItems, err := s.carts.Find(customerID)
	if err != nil {
		return nil, err
	}
	if c == nil || len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]Item, 0, len(cartItems))
	for _, ci := range cartItems {
		p, err := s.products.GetByID(ci.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, Item{
			ProductID:   ci.ProductID,
			ProductName: p.Name,
			Quantity:    ci.Quantity,
			UnitPrice:   ci.UnitPrice,
		})
	}

	now := time.Now().UTC()
	o := &Order{
		Number:          NewNumber(now),
		CustomerID:      customerID,
		Items:           items,
		TotalAmount:     TotalOf(items),
		Status:          StatusPendingPayment,
		RecipientName:   recipientName,
		RecipientPhone:  recipientPhone,
		ShippingAddress: shippingAddress,
		Note:            note,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	return s.repo.Create(o, c.ID)
}

// UpdateStatus overwrites the order status with any known status value.
// No adjacency check is performed here; only Cancel guards transitions.
func (s *Service) UpdateStatus(orderID int64, statusName string) error {
	if _, err := s.repo.GetByID(orderID); err != nil {
		return err
	}
	status, err := ParseStatus(statusName)
	if err != nil {
		return err
	}
	return s.repo.UpdateStatus(orderID, status, time.Now().UTC())
}

// Cancel marks the order CANCELLED unless it already shipped, was
// delivered, or is cancelled.
func (s *Service) Cancel(orderID int64) error {
	o, err := s.repo.GetByID(orderID)
	if err != nil {
		return err
	}
	if !o.Status.CanCancel() {
		return ErrIllegalTransition
	}
	return s.repo.UpdateStatus(orderID, StatusCancelled, time.Now().UTC())
}

func (s *Service) GetByID(orderID int64) (*Order, error) {
	return s.repo.GetByID(orderID)
}

func (s *Service) GetByNumber(number string) (*Order, error) {
	return s.repo.GetByNumber(number)
}

func (s *Service) List() ([]Order, error) {
	return s.repo.List()
}

// ListByCustomer returns the customer's orders newest first.
func (s *Service) ListByCustomer(customerID int64) ([]Order, error) {
	if _, err := s.customers.GetByID(customerID); err != nil {
		return nil, err
	}
	return s.repo.ListByCustomer(customerID)
}

func (s *Service) ListByStatus(statusName string) ([]Order, error) {
	status, err := ParseStatus(statusName)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByStatus(status)
}

func (s *Service) ListByIDs(ids []int64) ([]Order, error) {
	return s.repo.ListByIDs(ids)
}
