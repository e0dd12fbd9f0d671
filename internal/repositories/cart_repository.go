package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
)

type CartRepository interface {
	// GetCartByCustomerID returns sql.ErrNoRows when the customer has no stored cart.
	GetCartByCustomerID(ctx context.Context, customerID string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) GetCartByCustomerID(ctx context.Context, customerID string) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT customer_id, items, updated_at
		FROM carts
		WHERE customer_id = $1
	`

	cart := &models.Cart{}

	var itemsJSON []byte

	err := r.DB.QueryRowContext(dbCtx, query, customerID).Scan(&cart.CustomerID, &itemsJSON, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &cart.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}

	return cart, nil
}

// SaveCart upserts the cart. A write carrying an older updated_at than the stored row is
// ignored, so saves arriving out of order cannot roll the cart back.
func (r *cartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	items := cart.Items
	if items == nil {
		items = []models.CartItem{}
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		INSERT INTO carts (customer_id, items, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (customer_id) DO UPDATE
		SET items = EXCLUDED.items, updated_at = EXCLUDED.updated_at
		WHERE carts.updated_at <= EXCLUDED.updated_at
	`

	if _, err := r.DB.ExecContext(dbCtx, query, cart.CustomerID, itemsJSON, cart.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save the cart: %w", err)
	}

	return nil
}
