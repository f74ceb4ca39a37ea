package order

import (
	"sort"
	"sync"
	"time"
)

// CartClearer empties a cart's lines. The in-memory repository uses it to
// mirror the transactional cart clear the postgres repository performs.
type CartClearer interface {
	Clear(cartID int64) error
}

type Repository interface {
	// Create persists the order with its items and clears the source cart
	// as one unit. When persistence fails the cart is left untouched.
	Create(o *Order, clearCartID int64) (*Order, error)
	GetByID(id int64) (*Order, error)
	GetByNumber(number string) (*Order, error)
	List() ([]Order, error)
	ListByCustomer(customerID int64) ([]Order, error)
	ListByStatus(status Status) ([]Order, error)
	// ListByIDs returns the orders whose id is present in the provided
	// slice, in the same order as the ids argument.
	ListByIDs(ids []int64) ([]Order, error)
	UpdateStatus(id int64, status Status, updatedAt time.Time) error
}

type InMemoryRepository struct {
	mu         sync.RWMutex
	orders     []Order
	carts      CartClearer
	nextID     int64
	nextItemID int64
}

// NewInMemoryRepository builds a repository for tests. carts may be nil
// when no cart store participates.
func NewInMemoryRepository(carts CartClearer) *InMemoryRepository {
	return &InMemoryRepository{carts: carts, nextID: 1, nextItemID: 1}
}

func (r *InMemoryRepository) Create(o *Order, clearCartID int64) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := *o
	saved.ID = r.nextID
	r.nextID++
	saved.Items = make([]Item, len(o.Items))
	for i, it := range o.Items {
		it.ID = r.nextItemID
		r.nextItemID++
		it.OrderID = saved.ID
		saved.Items[i] = it
	}
	r.orders = append(r.orders, saved)

	if r.carts != nil {
		if err := r.carts.Clear(clearCartID); err != nil {
			// roll the order back so no partial state survives
			r.orders = r.orders[:len(r.orders)-1]
			return nil, err
		}
	}
	out := saved
	return &out, nil
}

func (r *InMemoryRepository) GetByID(id int64) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ID == id {
			out := o
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) GetByNumber(number string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.Number == number {
			out := o
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) List() ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return newestFirst(r.orders, func(Order) bool { return true }), nil
}

func (r *InMemoryRepository) ListByCustomer(customerID int64) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return newestFirst(r.orders, func(o Order) bool { return o.CustomerID == customerID }), nil
}

func (r *InMemoryRepository) ListByStatus(status Status) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return newestFirst(r.orders, func(o Order) bool { return o.Status == status }), nil
}

func (r *InMemoryRepository) ListByIDs(ids []int64) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0, len(ids))
	for _, id := range ids {
		for _, o := range r.orders {
			if o.ID == id {
				out = append(out, o)
				break
			}
		}
	}
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(id int64, status Status, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			r.orders[i].UpdatedAt = updatedAt
			return nil
		}
	}
	return ErrNotFound
}

func newestFirst(orders []Order, keep func(Order) bool) []Order {
	out := make([]Order, 0)
	for _, o := range orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[j].CreatedAt.Before(out[i].CreatedAt)
	})
	return out
}
