package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url"`
}

// Subtotal is UnitPrice × Quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart keeps its items in insertion order. Counts and totals are derived on read.
type Cart struct {
	CustomerID string     `json:"customer_id,omitempty"`
	Items      []CartItem `json:"items"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (c Cart) ItemCount() int {
	count := 0

	for _, item := range c.Items {
		count += item.Quantity
	}

	return count
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero

	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}

	return total
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

type AddItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required,gt=0"`
	ImageURL  string          `json:"image_url" validate:"omitempty,url"`
	Quantity  int             `json:"quantity" validate:"omitempty,min=1"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Cart      Cart            `json:"cart"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

func NewCartResponse(cart Cart) *CartResponse {
	if cart.Items == nil {
		cart.Items = []CartItem{}
	}

	return &CartResponse{Cart: cart, ItemCount: cart.ItemCount(), Total: cart.Total()}
}
