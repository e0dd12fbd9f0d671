package validation

import (
	"strings"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
)

// Shipping is an address accepted by Validator.Shipping. Only this package can mint a
// non-zero value, so holding one proves the address passed validation.
type Shipping struct {
	address models.ShippingAddress
	valid   bool
}

func (s Shipping) Address() models.ShippingAddress {
	return s.address
}

// IsZero reports whether s was built outside the validator.
func (s Shipping) IsZero() bool {
	return !s.valid
}

// Shipping validates a raw address submission. Every field is checked; the error lists
// all rejected fields.
func (v *Validator) Shipping(in models.ShippingAddressInput) (Shipping, error) {
	in = models.ShippingAddressInput{
		LastName:   v.clean(in.LastName),
		FirstName:  v.clean(in.FirstName),
		PostalCode: v.clean(in.PostalCode),
		Prefecture: v.clean(in.Prefecture),
		City:       v.clean(in.City),
		Address1:   v.clean(in.Address1),
		Address2:   v.clean(in.Address2),
		Phone:      v.clean(in.Phone),
	}

	if err := v.Struct(in); err != nil {
		return Shipping{}, err
	}

	address := models.ShippingAddress(in)
	address.PostalCode = normalizePostalCode(in.PostalCode)

	return Shipping{address: address, valid: true}, nil
}

// normalizePostalCode renders an accepted postal code as ###-####.
func normalizePostalCode(code string) string {
	if strings.Contains(code, "-") {
		return code
	}
	return code[:3] + "-" + code[3:]
}
