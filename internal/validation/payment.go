package validation

import (
	"strings"

	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
)

// Payment is a payment method accepted by Validator.Payment.
type Payment struct {
	method models.PaymentMethod
}

func (p Payment) Method() models.PaymentMethod {
	return p.method
}

func (p Payment) IsZero() bool {
	return p.method == nil
}

// Payment validates a raw payment submission, discriminated by its type. Card fields sent
// with a non-card type are ignored.
func (v *Validator) Payment(in models.PaymentMethodInput) (Payment, error) {
	in.Type = models.PaymentKind(strings.TrimSpace(string(in.Type)))

	if in.Type == models.PaymentKindCreditCard {
		in.CardNumber = strings.ReplaceAll(v.clean(in.CardNumber), " ", "")
		in.CardExpiry = v.clean(in.CardExpiry)
		in.CardCVC = v.clean(in.CardCVC)
	} else {
		in.CardNumber, in.CardExpiry, in.CardCVC = "", "", ""
	}

	if err := v.Struct(in); err != nil {
		return Payment{}, err
	}

	switch in.Type {
	case models.PaymentKindCreditCard:
		return Payment{method: models.CreditCard{
			Number: in.CardNumber,
			Expiry: in.CardExpiry,
			CVC:    in.CardCVC,
		}}, nil
	case models.PaymentKindConvenienceStore:
		return Payment{method: models.ConvenienceStore{}}, nil
	case models.PaymentKindBankTransfer:
		return Payment{method: models.BankTransfer{}}, nil
	default:
		return Payment{}, appErrors.AddValidationError("type", "unsupported payment method")
	}
}
