// Package cart holds the authoritative in-memory cart of one customer.
package cart

import (
	"slices"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/shopspring/decimal"
)

// Listener observes every mutation. It receives a copy of the cart after the change.
type Listener func(cart models.Cart)

// Store is safe for concurrent use. Listeners run synchronously, after the mutation
// is applied and before the mutating call returns, without the store lock held.
type Store struct {
	mu        sync.Mutex
	cart      models.Cart
	listeners map[int]Listener
	nextID    int
	now       func() time.Time
}

type Option func(*Store)

// WithClock replaces time.Now for updatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore rehydrates a store from a persisted cart. A zero cart starts empty.
func NewStore(initial models.Cart, opts ...Option) *Store {
	s := &Store{
		listeners: make(map[int]Listener),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.cart = clone(initial)
	if s.cart.UpdatedAt.IsZero() {
		s.cart.UpdatedAt = s.now()
	}

	return s
}

// AddItem increments the quantity of an existing line, or appends a new one.
// A quantity below 1 adds a single unit.
func (s *Store) AddItem(productID, name string, unitPrice decimal.Decimal, imageURL string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mutate(func(c *models.Cart) bool {
		if i := indexOf(c.Items, productID); i >= 0 {
			c.Items[i].Quantity += quantity
			return true
		}

		c.Items = append(c.Items, models.CartItem{
			ProductID: productID,
			Name:      name,
			UnitPrice: unitPrice,
			Quantity:  quantity,
			ImageURL:  imageURL,
		})

		return true
	})
}

// RemoveItem drops the line for productID. Removing an absent product is a no-op.
func (s *Store) RemoveItem(productID string) {
	s.mutate(func(c *models.Cart) bool {
		return remove(c, productID)
	})
}

// UpdateQuantity sets the quantity of an existing line. quantity <= 0 removes it.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.mutate(func(c *models.Cart) bool {
		if quantity <= 0 {
			return remove(c, productID)
		}

		i := indexOf(c.Items, productID)
		if i < 0 {
			return false
		}

		c.Items[i].Quantity = quantity

		return true
	})
}

func (s *Store) Clear() {
	s.mutate(func(c *models.Cart) bool {
		c.Items = nil
		return true
	})
}

func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart.ItemCount()
}

func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart.Total()
}

// Snapshot returns a copy that callers may keep and modify.
func (s *Store) Snapshot() models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return clone(s.cart)
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// mutate applies fn under the lock. fn reports whether it changed the cart;
// only changes stamp updatedAt and notify listeners.
func (s *Store) mutate(fn func(c *models.Cart) bool) {
	s.mu.Lock()

	if !fn(&s.cart) {
		s.mu.Unlock()
		return
	}

	s.cart.UpdatedAt = s.now()
	snapshot := clone(s.cart)

	listeners := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if l, ok := s.listeners[id]; ok {
			listeners = append(listeners, l)
		}
	}

	s.mu.Unlock()

	for _, l := range listeners {
		l(clone(snapshot))
	}
}

func indexOf(items []models.CartItem, productID string) int {
	return slices.IndexFunc(items, func(item models.CartItem) bool {
		return item.ProductID == productID
	})
}

func remove(c *models.Cart, productID string) bool {
	i := indexOf(c.Items, productID)
	if i < 0 {
		return false
	}

	c.Items = slices.Delete(c.Items, i, i+1)

	return true
}

func clone(c models.Cart) models.Cart {
	c.Items = slices.Clone(c.Items)

	return c
}
