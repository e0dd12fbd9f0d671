// Package checkout implements the linear checkout flow
// shipping → payment → confirmation → complete.
//
// The machine does no field validation. Its forward transitions accept only values minted
// by package validation, so reaching payment without an accepted address, or confirmation
// without an accepted payment method, cannot be expressed by callers.
package checkout

import (
	"fmt"

	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/validation"
	"github.com/google/uuid"
)

// Machine is not safe for concurrent use; the owning session serializes access.
type Machine struct {
	step           models.CheckoutStep
	shipping       validation.Shipping
	payment        validation.Payment
	idempotencyKey string
	order          *models.Order
	newKey         func() string
}

func NewMachine() *Machine {
	return &Machine{step: models.CheckoutStepShipping, newKey: uuid.NewString}
}

func (m *Machine) Step() models.CheckoutStep {
	return m.step
}

// Shipping returns the accepted address, if the flow has one.
func (m *Machine) Shipping() (models.ShippingAddress, bool) {
	if m.shipping.IsZero() {
		return models.ShippingAddress{}, false
	}
	return m.shipping.Address(), true
}

// Payment returns the accepted payment method, if the flow has one.
func (m *Machine) Payment() (models.PaymentMethod, bool) {
	if m.payment.IsZero() {
		return nil, false
	}
	return m.payment.Method(), true
}

// IdempotencyKey identifies the order submission of the current confirmation. It stays
// stable across retries so a repeated submission cannot create a second order.
func (m *Machine) IdempotencyKey() string {
	return m.idempotencyKey
}

// Order is the created order once the flow is complete.
func (m *Machine) Order() *models.Order {
	return m.order
}

// AdvanceToPayment moves shipping → payment with an accepted address.
func (m *Machine) AdvanceToPayment(shipping validation.Shipping) error {
	if shipping.IsZero() {
		return appErrors.PreconditionError("checkout: shipping address was not produced by the validator")
	}

	if err := m.expect(models.CheckoutStepShipping); err != nil {
		return err
	}

	m.shipping = shipping
	m.step = models.CheckoutStepPayment

	return nil
}

// AdvanceToConfirmation moves payment → confirmation with an accepted payment method.
func (m *Machine) AdvanceToConfirmation(payment validation.Payment) error {
	if payment.IsZero() {
		return appErrors.PreconditionError("checkout: payment method was not produced by the validator")
	}

	if err := m.expect(models.CheckoutStepPayment); err != nil {
		return err
	}

	m.payment = payment
	m.idempotencyKey = m.newKey()
	m.step = models.CheckoutStepConfirmation

	return nil
}

// Complete moves confirmation → complete once the order exists.
func (m *Machine) Complete(order *models.Order) error {
	if order == nil {
		return appErrors.PreconditionError("checkout: cannot complete without a created order")
	}

	if err := m.expect(models.CheckoutStepConfirmation); err != nil {
		return err
	}

	m.order = order
	m.step = models.CheckoutStepComplete

	return nil
}

// Back moves one step backwards. It reports false, changing nothing, from shipping and
// from the terminal step.
func (m *Machine) Back() bool {
	switch m.step {
	case models.CheckoutStepPayment:
		m.step = models.CheckoutStepShipping
	case models.CheckoutStepConfirmation:
		m.step = models.CheckoutStepPayment
		m.idempotencyKey = ""
	default:
		return false
	}

	return true
}

// Reset abandons the flow and discards the transient address and payment method.
func (m *Machine) Reset() {
	m.step = models.CheckoutStepShipping
	m.shipping = validation.Shipping{}
	m.payment = validation.Payment{}
	m.idempotencyKey = ""
	m.order = nil
}

func (m *Machine) expect(step models.CheckoutStep) error {
	if m.step != step {
		return appErrors.ConflictError(fmt.Sprintf("checkout is at step %q, expected %q", m.step, step))
	}
	return nil
}
