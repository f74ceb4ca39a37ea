package cart

import (
	"sync"
	"time"
)

type Repository interface {
	GetByCustomer(customerID int64) (Cart, error)
	CreateForCustomer(customerID int64) (Cart, error)
	Items(cartID int64) ([]Item, error)
	GetItem(itemID int64) (Item, error)
	AddItem(item Item) (Item, error)
	UpdateItemQuantity(itemID int64, quantity int) error
	RemoveItem(itemID int64) error
	Clear(cartID int64) error
}

// InMemoryRepository keeps carts and items in slices guarded by one mutex.
// Used by tests and as the reference semantics for the postgres repository.
type InMemoryRepository struct {
	mu         sync.RWMutex
	carts      []Cart
	items      []Item
	nextCartID int64
	nextItemID int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextCartID: 1, nextItemID: 1}
}

func (r *InMemoryRepository) GetByCustomer(customerID int64) (Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.carts {
		if c.CustomerID == customerID {
			return c, nil
		}
	}
	return Cart{}, ErrNotFound
}

func (r *InMemoryRepository) CreateForCustomer(customerID int64) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// never a second cart for the same customer
	for _, c := range r.carts {
		if c.CustomerID == customerID {
			return c, nil
		}
	}
	now := time.Now().UTC()
	c := Cart{ID: r.nextCartID, CustomerID: customerID, CreatedAt: now, UpdatedAt: now}
	r.nextCartID++
	r.carts = append(r.carts, c)
	return c, nil
}

func (r *InMemoryRepository) Items(cartID int64) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Item, 0)
	for _, it := range r.items {
		if it.CartID == cartID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetItem(itemID int64) (Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, it := range r.items {
		if it.ID == itemID {
			return it, nil
		}
	}
	return Item{}, ErrItemNotFound
}

func (r *InMemoryRepository) AddItem(item Item) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = r.nextItemID
	r.nextItemID++
	r.items = append(r.items, item)
	r.touch(item.CartID)
	return item, nil
}

func (r *InMemoryRepository) UpdateItemQuantity(itemID int64, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == itemID {
			r.items[i].Quantity = quantity
			r.touch(r.items[i].CartID)
			return nil
		}
	}
	return ErrItemNotFound
}

func (r *InMemoryRepository) RemoveItem(itemID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == itemID {
			cartID := r.items[i].CartID
			r.items = append(r.items[:i], r.items[i+1:]...)
			r.touch(cartID)
			return nil
		}
	}
	return ErrItemNotFound
}

func (r *InMemoryRepository) Clear(cartID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.items[:0]
	for _, it := range r.items {
		if it.CartID != cartID {
			kept = append(kept, it)
		}
	}
	r.items = kept
	r.touch(cartID)
	return nil
}

func (r *InMemoryRepository) touch(cartID int64) {
	for i := range r.carts {
		if r.carts[i].ID == cartID {
			r.carts[i].UpdatedAt = time.Now().UTC()
			return
		}
	}
}
