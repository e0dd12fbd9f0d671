// Package session keeps the per-customer state container: one cart store and one checkout
// machine per authenticated customer, created on first touch.
package session

import (
	"sync"
	"sync/atomic"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/cart"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/checkout"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
)

type Session struct {
	customerID string
	cart       *cart.Store
	machine    *checkout.Machine

	// mu serializes every read-modify-write of cart and machine.
	mu         sync.Mutex
	submitting atomic.Bool

	persistMu sync.Mutex
	pending   *models.Cart
	flushing  bool
}

func newSession(customerID string, initial models.Cart, opts ...cart.Option) *Session {
	initial.CustomerID = customerID

	return &Session{
		customerID: customerID,
		cart:       cart.NewStore(initial, opts...),
		machine:    checkout.NewMachine(),
	}
}

func (s *Session) CustomerID() string {
	return s.customerID
}

// Do runs fn with the session lock held.
func (s *Session) Do(fn func(cart *cart.Store, machine *checkout.Machine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.cart, s.machine)
}

// BeginSubmit marks an order submission as in flight. It reports false when one already is.
func (s *Session) BeginSubmit() bool {
	return s.submitting.CompareAndSwap(false, true)
}

func (s *Session) EndSubmit() {
	s.submitting.Store(false)
}

// Submitting reports whether an order submission is in flight.
func (s *Session) Submitting() bool {
	return s.submitting.Load()
}
