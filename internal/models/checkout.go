package models

import "github.com/shopspring/decimal"

type CheckoutStep string

const (
	CheckoutStepShipping     CheckoutStep = "shipping"
	CheckoutStepPayment      CheckoutStep = "payment"
	CheckoutStepConfirmation CheckoutStep = "confirmation"
	CheckoutStepComplete     CheckoutStep = "complete"
)

func (s CheckoutStep) IsTerminal() bool {
	return s == CheckoutStepComplete
}

func (s CheckoutStep) String() string {
	return string(s)
}

// ShippingAddress is an accepted, normalized postal address.
type ShippingAddress struct {
	LastName   string `json:"last_name"`
	FirstName  string `json:"first_name"`
	PostalCode string `json:"postal_code"`
	Prefecture string `json:"prefecture"`
	City       string `json:"city"`
	Address1   string `json:"address1"`
	Address2   string `json:"address2,omitempty"`
	Phone      string `json:"phone"`
}

// ShippingAddressInput is the raw form submission.
type ShippingAddressInput struct {
	LastName   string `json:"last_name" validate:"required"`
	FirstName  string `json:"first_name" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required,postalcode"`
	Prefecture string `json:"prefecture" validate:"required"`
	City       string `json:"city" validate:"required"`
	Address1   string `json:"address1" validate:"required"`
	Address2   string `json:"address2,omitempty"`
	Phone      string `json:"phone" validate:"required,phone"`
}

// ToInput returns the address in wire form.
func (a ShippingAddress) ToInput() ShippingAddressInput {
	return ShippingAddressInput(a)
}

type CheckoutView struct {
	Step            CheckoutStep     `json:"step"`
	ShippingAddress *ShippingAddress `json:"shipping_address,omitempty"`
	Payment         *PaymentSummary  `json:"payment,omitempty"`
	Items           []CartItem       `json:"items"`
	ItemCount       int              `json:"item_count"`
	Total           decimal.Decimal  `json:"total"`
	Order           *Order           `json:"order,omitempty"`
}
