package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/cache"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// OrderQueryService serves order reads through a read-through cache.
type OrderQueryService interface {
	OrderInvalidator
	GetOrder(ctx context.Context, customerID, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, customerID uuid.UUID, page, size int) (*models.PaginatedResponse, error)
}

type orderCacheInvalidator struct {
	cache cache.Cache
}

// NewOrderInvalidator drops the cached detail of each order and every cached list page of
// the customer.
func NewOrderInvalidator(c cache.Cache) OrderInvalidator {
	return &orderCacheInvalidator{cache: c}
}

// Invalidate is best effort; stale entries expire with their TTL. The customer's
// generation changes first, so loads already in flight do not cache what they read.
func (i *orderCacheInvalidator) Invalidate(ctx context.Context, customerID uuid.UUID, orderIDs ...uuid.UUID) {
	logger := middleware.LoggerFromContext(ctx)

	if err := i.cache.Set(ctx, generationKey(customerID), uuid.NewString(), generationTTL); err != nil {
		logger.Warn("Failed to bump order cache generation", slog.String("customer_id", customerID.String()), slog.Any("error", err))
	}

	if _, err := i.cache.DeletePrefix(ctx, cache.Key(cache.OrderListKeyPrefix, customerID.String(), "")); err != nil {
		logger.Warn("Failed to invalidate cached order lists", slog.String("customer_id", customerID.String()), slog.Any("error", err))
	}

	for _, id := range orderIDs {
		if err := i.cache.Delete(ctx, cache.Key(cache.OrderKeyPrefix, id.String())); err != nil {
			logger.Warn("Failed to invalidate cached order", slog.String("order_id", id.String()), slog.Any("error", err))
		}
	}
}

// generationTTL outlives any cached order entry.
const generationTTL = 24 * time.Hour

func generationKey(customerID uuid.UUID) string {
	return cache.Key(cache.OrderGenerationKeyPrefix, customerID.String())
}

type orderQueryService struct {
	OrderInvalidator
	orders OrderAPI
	cache  cache.Cache
	ttl    time.Duration
	group  singleflight.Group
}

func NewOrderQueryService(orders OrderAPI, c cache.Cache, ttl time.Duration) OrderQueryService {
	return &orderQueryService{
		OrderInvalidator: NewOrderInvalidator(c),
		orders:           orders,
		cache:            c,
		ttl:              ttl,
	}
}

func (s *orderQueryService) GetOrder(ctx context.Context, customerID, id uuid.UUID) (*models.Order, error) {
	key := cache.Key(cache.OrderKeyPrefix, id.String())

	order, err := readThrough(ctx, s, customerID, key, func(ctx context.Context) (*models.Order, error) {
		return s.orders.GetOrder(ctx, customerID, id)
	})
	if err != nil {
		return nil, err
	}

	// the detail key is shared by every reader of the order
	if order.CustomerID != customerID {
		return nil, errors.NotFoundError("Order not found")
	}

	return order, nil
}

func (s *orderQueryService) ListOrders(ctx context.Context, customerID uuid.UUID, page, size int) (*models.PaginatedResponse, error) {
	key := cache.Key(cache.OrderListKeyPrefix, customerID.String(), strconv.Itoa(page), strconv.Itoa(size))

	type orderPage struct {
		Orders []models.Order `json:"orders"`
		Total  int            `json:"total"`
	}

	result, err := readThrough(ctx, s, customerID, key, func(ctx context.Context) (*orderPage, error) {
		orders, total, err := s.orders.ListOrders(ctx, customerID, page, size)
		if err != nil {
			return nil, err
		}
		if orders == nil {
			orders = []models.Order{}
		}
		return &orderPage{Orders: orders, Total: total}, nil
	})
	if err != nil {
		return nil, err
	}

	return &models.PaginatedResponse{Data: result.Orders, Total: result.Total, Page: page, PageSize: size}, nil
}

// readThrough returns the cached value under key, or loads it once for all concurrent
// callers of the same customer and caches it. Cache failures degrade to a direct load.
func readThrough[T any](ctx context.Context, s *orderQueryService, customerID uuid.UUID, key string, load func(ctx context.Context) (*T, error)) (*T, error) {
	logger := middleware.LoggerFromContext(ctx)

	var cached T
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Order cache read failed", slog.String("key", key), slog.Any("error", err))
	}
	if found {
		return &cached, nil
	}

	// one caller's cancellation must not fail the others waiting on the flight
	shared := context.WithoutCancel(ctx)

	v, err, _ := s.group.Do(key+"|"+customerID.String(), func() (any, error) {
		generation, genErr := s.generation(shared, customerID)

		value, err := load(shared)
		if err != nil {
			return nil, err
		}

		if genErr != nil {
			logger.Warn("Order cache generation unreadable, skipping write", slog.String("key", key), slog.Any("error", genErr))
			return value, nil
		}

		current, err := s.generation(shared, customerID)
		if err != nil || current != generation {
			logger.Debug("Order cache invalidated during load, skipping write", slog.String("key", key))
			return value, nil
		}

		if err := s.cache.Set(shared, key, value, s.ttl); err != nil {
			logger.Warn("Order cache write failed", slog.String("key", key), slog.Any("error", err))
		}

		return value, nil
	})
	if err != nil {
		return nil, err
	}

	value, ok := v.(*T)
	if !ok {
		return nil, errors.InternalError("Unexpected cached value").WithError(fmt.Errorf("got %T", v))
	}

	return value, nil
}

// generation is empty until the customer's orders are first invalidated.
func (s *orderQueryService) generation(ctx context.Context, customerID uuid.UUID) (string, error) {
	var generation string
	if _, err := s.cache.Get(ctx, generationKey(customerID), &generation); err != nil {
		return "", err
	}
	return generation, nil
}
