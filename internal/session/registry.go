package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/cart"
	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"golang.org/x/sync/singleflight"
)

const persistTimeout = 5 * time.Second

// Registry owns the sessions of every customer served by this process. Carts are loaded
// from the repository on first touch and written back after every mutation.
type Registry struct {
	carts repository.CartRepository
	opts  []cart.Option

	mu       sync.Mutex
	sessions map[string]*Session
	loads    singleflight.Group
	writes   sync.WaitGroup
}

func NewRegistry(carts repository.CartRepository, opts ...cart.Option) *Registry {
	return &Registry{
		carts:    carts,
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Get returns the customer's session, rehydrating the persisted cart the first time.
// Concurrent first touches share one load. A failed load is not remembered, so the next
// call tries again.
func (r *Registry) Get(ctx context.Context, customerID string) (*Session, error) {
	if s := r.lookup(customerID); s != nil {
		return s, nil
	}

	v, err, _ := r.loads.Do(customerID, func() (any, error) {
		if s := r.lookup(customerID); s != nil {
			return s, nil
		}

		stored, err := r.carts.GetCartByCustomerID(ctx, customerID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			stored = &models.Cart{}
		case err != nil:
			return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
		}

		s := newSession(customerID, *stored, r.opts...)
		s.cart.Subscribe(func(c models.Cart) { r.schedule(s, c) })

		r.mu.Lock()
		r.sessions[customerID] = s
		r.mu.Unlock()

		return s, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Session), nil
}

func (r *Registry) lookup(customerID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sessions[customerID]
}

// schedule queues c for writing. Writes of one session run one at a time and only the
// newest pending cart is written.
func (r *Registry) schedule(s *Session, c models.Cart) {
	s.persistMu.Lock()
	s.pending = &c
	if s.flushing {
		s.persistMu.Unlock()
		return
	}
	s.flushing = true
	r.writes.Add(1)
	s.persistMu.Unlock()

	go r.flush(s)
}

func (r *Registry) flush(s *Session) {
	defer r.writes.Done()

	for {
		s.persistMu.Lock()
		c := s.pending
		s.pending = nil
		if c == nil {
			s.flushing = false
			s.persistMu.Unlock()
			return
		}
		s.persistMu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		if err := r.carts.SaveCart(ctx, c); err != nil {
			// the in-memory cart stays authoritative; the next mutation retries the write
			slog.Error("Failed to persist cart",
				slog.String("customer_id", s.customerID),
				slog.Any("error", err),
			)
		}
		cancel()
	}
}

// Close waits for pending cart writes to finish or for ctx to end.
func (r *Registry) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.writes.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for cart writes: %w", ctx.Err())
	}
}
