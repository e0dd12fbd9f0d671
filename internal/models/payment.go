package models

import "fmt"

type PaymentKind string

const (
	PaymentKindCreditCard       PaymentKind = "credit_card"
	PaymentKindConvenienceStore PaymentKind = "convenience_store"
	PaymentKindBankTransfer     PaymentKind = "bank_transfer"
)

// PaymentMethod is a closed sum type: CreditCard, ConvenienceStore or BankTransfer.
// Consumers switch on the concrete type.
type PaymentMethod interface {
	Kind() PaymentKind
	isPaymentMethod()
}

type CreditCard struct {
	Number string
	Expiry string
	CVC    string
}

type ConvenienceStore struct{}

type BankTransfer struct{}

func (CreditCard) Kind() PaymentKind       { return PaymentKindCreditCard }
func (ConvenienceStore) Kind() PaymentKind { return PaymentKindConvenienceStore }
func (BankTransfer) Kind() PaymentKind     { return PaymentKindBankTransfer }

func (CreditCard) isPaymentMethod()       {}
func (ConvenienceStore) isPaymentMethod() {}
func (BankTransfer) isPaymentMethod()     {}

// Last4 returns the trailing four digits of the card number.
func (c CreditCard) Last4() string {
	if len(c.Number) <= 4 {
		return c.Number
	}

	return c.Number[len(c.Number)-4:]
}

// PaymentMethodInput is the raw, wire form of a payment method as entered by the customer.
type PaymentMethodInput struct {
	Type       PaymentKind `json:"type" validate:"required,oneof=credit_card convenience_store bank_transfer"`
	CardNumber string      `json:"card_number,omitempty" validate:"required_if=Type credit_card"`
	CardExpiry string      `json:"card_expiry,omitempty" validate:"required_if=Type credit_card"`
	CardCVC    string      `json:"card_cvc,omitempty" validate:"required_if=Type credit_card"`
}

// PaymentSummary is safe to show back to the customer and to persist.
type PaymentSummary struct {
	Type      PaymentKind `json:"type"`
	CardLast4 string      `json:"card_last4,omitempty"`
}

func SummarizePayment(method PaymentMethod) (PaymentSummary, error) {
	switch m := method.(type) {
	case CreditCard:
		return PaymentSummary{Type: PaymentKindCreditCard, CardLast4: m.Last4()}, nil
	case ConvenienceStore:
		return PaymentSummary{Type: PaymentKindConvenienceStore}, nil
	case BankTransfer:
		return PaymentSummary{Type: PaymentKindBankTransfer}, nil
	default:
		return PaymentSummary{}, fmt.Errorf("unsupported payment method %T", method)
	}
}

// PaymentInputFrom converts a typed payment method back into its wire form.
func PaymentInputFrom(method PaymentMethod) (PaymentMethodInput, error) {
	switch m := method.(type) {
	case CreditCard:
		return PaymentMethodInput{
			Type:       PaymentKindCreditCard,
			CardNumber: m.Number,
			CardExpiry: m.Expiry,
			CardCVC:    m.CVC,
		}, nil
	case ConvenienceStore:
		return PaymentMethodInput{Type: PaymentKindConvenienceStore}, nil
	case BankTransfer:
		return PaymentMethodInput{Type: PaymentKindBankTransfer}, nil
	default:
		return PaymentMethodInput{}, fmt.Errorf("unsupported payment method %T", method)
	}
}
