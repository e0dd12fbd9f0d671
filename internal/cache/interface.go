package cache

import (
	"context"
	"strings"
	"time"
)

// Cache is a JSON value store with per-entry expiry. A miss is reported as found=false
// with a nil error.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeletePrefix drops every key starting with prefix and returns how many were removed.
	DeletePrefix(ctx context.Context, prefix string) (int64, error)
	Close() error
}

// Key joins a prefix and one or more id segments with ':'.
func Key(prefix string, parts ...string) string {
	return prefix + ":" + strings.Join(parts, ":")
}

const (
	OrderKeyPrefix     = "order"
	OrderListKeyPrefix = "orders"
	// OrderGenerationKeyPrefix holds a per-customer token replaced on every invalidation.
	OrderGenerationKeyPrefix = "ordergen"
)
