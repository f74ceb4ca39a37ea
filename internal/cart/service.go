package cart

import (
	"github.com/chiayulin/shopmart-backend/internal/customer"
	"github.com/chiayulin/shopmart-backend/internal/product"
)

// ProductFinder is the slice of the catalog the cart depends on.
type ProductFinder interface {
	GetByID(id int64) (product.Product, error)
}

// CustomerFinder resolves customer ids; not-found is a distinguishable error.
type CustomerFinder interface {
	GetByID(id int64) (customer.Customer, error)
}

// Service maintains the customer's pre-order staging area.
type Service struct {
	repo      Repository
	products  ProductFinder
	customers CustomerFinder
}

func NewService(repo Repository, products ProductFinder, customers CustomerFinder) *Service {
	return &Service{repo: repo, products: products, customers: customers}
}

// GetOrCreate returns the customer's cart, creating an empty one on first
// use. A customer never ends up with two carts.
func (s *Service) GetOrCreate(customerID int64) (Cart, error) {
	if _, err := s.customers.GetByID(customerID); err != nil {
		return Cart{}, err
	}
	c, err := s.repo.GetByCustomer(customerID)
	if err == ErrNotFound {
		return s.repo.CreateForCustomer(customerID)
	}
	return c, err
}

// AddProduct puts quantity units of a product into the customer's cart.
// A product already present gets its quantity summed and keeps the unit
// price captured when it was first added; a new line snapshots the current
// catalog price.
func (s *Service) AddProduct(customerID, productID int64, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	p, err := s.products.GetByID(productID)
	if err != nil {
		return err
	}

	c, err := s.GetOrCreate(customerID)
	if err != nil {
		return err
	}

	items, err := s.repo.Items(c.ID)
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.ProductID == productID {
			return s.repo.UpdateItemQuantity(it.ID, it.Quantity+quantity)
		}
	}

	_, err = s.repo.AddItem(Item{
		CartID:    c.ID,
		ProductID: p.ID,
		Quantity:  quantity,
		UnitPrice: p.Price,
	})
	return err
}

// UpdateItemQuantity overwrites the quantity on an existing line.
func (s *Service) UpdateItemQuantity(itemID int64, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if _, err := s.repo.GetItem(itemID); err != nil {
		return err
	}
	return s.repo.UpdateItemQuantity(itemID, quantity)
}

// RemoveItem deletes the line from its cart.
func (s *Service) RemoveItem(itemID int64) error {
	return s.repo.RemoveItem(itemID)
}

// Clear empties the customer's cart. A customer without a cart is a no-op.
func (s *Service) Clear(customerID int64) error {
	c, err := s.repo.GetByCustomer(customerID)
	if err == ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	return s.repo.Clear(c.ID)
}

// Find returns the customer's cart and lines, or a nil cart when none
// exists. The order engine consumes this.
func (s *Service) Find(customerID int64) (*Cart, []Item, error) {
	c, err := s.repo.GetByCustomer(customerID)
	if err == ErrNotFound {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	items, err := s.repo.Items(c.ID)
	if err != nil {
		return nil, nil, err
	}
	return &c, items, nil
}

// View loads the cart with product names and totals for display. Customers
// without a cart get an empty view.
func (s *Service) View(customerID int64) (View, error) {
	c, items, err := s.Find(customerID)
	if err != nil {
		return View{}, err
	}
	if c == nil {
		return View{Items: []Item{}}, nil
	}

	for i := range items {
		// names are display-only; a deleted product leaves the name blank
		if p, err := s.products.GetByID(items[i].ProductID); err == nil {
			items[i].ProductName = p.Name
		}
	}

	amount, count := Totals(items)
	return View{Cart: c, Items: items, TotalAmount: amount, TotalItems: count}, nil
}
