package service

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/session"
)

// SessionStore hands out the per-customer state container.
type SessionStore interface {
	Get(ctx context.Context, customerID string) (*session.Session, error)
}
