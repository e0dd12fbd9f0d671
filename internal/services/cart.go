package service

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/cart"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/checkout"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
)

type CartService interface {
	GetCart(ctx context.Context, customerID string) (*models.CartResponse, error)
	AddItem(ctx context.Context, customerID string, req *models.AddItemRequest) (*models.CartResponse, error)
	UpdateQuantity(ctx context.Context, customerID, productID string, quantity int) (*models.CartResponse, error)
	RemoveItem(ctx context.Context, customerID, productID string) (*models.CartResponse, error)
	ClearCart(ctx context.Context, customerID string) (*models.CartResponse, error)
}

type cartService struct {
	sessions SessionStore
}

func NewCartService(sessions SessionStore) CartService {
	return &cartService{sessions: sessions}
}

func (s *cartService) GetCart(ctx context.Context, customerID string) (*models.CartResponse, error) {
	sess, err := s.sessions.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var snapshot models.Cart

	_ = sess.Do(func(store *cart.Store, _ *checkout.Machine) error {
		snapshot = store.Snapshot()
		return nil
	})

	return models.NewCartResponse(snapshot), nil
}

func (s *cartService) AddItem(ctx context.Context, customerID string, req *models.AddItemRequest) (*models.CartResponse, error) {
	return s.mutate(ctx, customerID, "add", func(store *cart.Store) {
		store.AddItem(req.ProductID, req.Name, req.UnitPrice, req.ImageURL, req.Quantity)
	})
}

func (s *cartService) UpdateQuantity(ctx context.Context, customerID, productID string, quantity int) (*models.CartResponse, error) {
	return s.mutate(ctx, customerID, "update_quantity", func(store *cart.Store) {
		store.UpdateQuantity(productID, quantity)
	})
}

func (s *cartService) RemoveItem(ctx context.Context, customerID, productID string) (*models.CartResponse, error) {
	return s.mutate(ctx, customerID, "remove", func(store *cart.Store) {
		store.RemoveItem(productID)
	})
}

func (s *cartService) ClearCart(ctx context.Context, customerID string) (*models.CartResponse, error) {
	return s.mutate(ctx, customerID, "clear", func(store *cart.Store) {
		store.Clear()
	})
}

// mutate applies fn under the session lock. The cart is frozen while its order is being
// submitted, since the submitted snapshot must be the cart that gets cleared.
func (s *cartService) mutate(ctx context.Context, customerID, operation string, fn func(store *cart.Store)) (*models.CartResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	sess, err := s.sessions.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var snapshot models.Cart

	err = sess.Do(func(store *cart.Store, _ *checkout.Machine) error {
		if sess.Submitting() {
			return errors.ConflictError("Cart cannot change while an order is being submitted")
		}

		fn(store)
		snapshot = store.Snapshot()

		return nil
	})
	if err != nil {
		logger.Warn("Cart mutation rejected", slog.String("operation", operation), slog.String("error", err.Error()))
		return nil, err
	}

	metrics.RecordCartMutation(operation)

	return models.NewCartResponse(snapshot), nil
}
