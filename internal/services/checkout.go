package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/cart"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/checkout"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/session"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/validation"
	"github.com/aaravmahajanofficial/storefront-checkout/pkg/mailer"
	"github.com/google/uuid"
)

const mailTimeout = 10 * time.Second

// OrderInvalidator drops cached order reads of a customer.
type OrderInvalidator interface {
	Invalidate(ctx context.Context, customerID uuid.UUID, orderIDs ...uuid.UUID)
}

type CheckoutService interface {
	GetCheckout(ctx context.Context, customerID string) (*models.CheckoutView, error)
	SubmitShipping(ctx context.Context, customerID string, in models.ShippingAddressInput) (*models.CheckoutView, error)
	SubmitPayment(ctx context.Context, customerID string, in models.PaymentMethodInput) (*models.CheckoutView, error)
	Back(ctx context.Context, customerID string) (*models.CheckoutView, error)
	Reset(ctx context.Context, customerID string) (*models.CheckoutView, error)
	SubmitOrder(ctx context.Context, customer *models.Claims) (*models.Order, error)
}

type checkoutService struct {
	sessions    SessionStore
	validator   *validation.Validator
	orders      OrderAPI
	limiter     repository.RateLimitRepository
	invalidator OrderInvalidator
	mailer      mailer.Mailer
}

func NewCheckoutService(
	sessions SessionStore,
	validator *validation.Validator,
	orders OrderAPI,
	limiter repository.RateLimitRepository,
	invalidator OrderInvalidator,
	mail mailer.Mailer,
) CheckoutService {
	return &checkoutService{
		sessions:    sessions,
		validator:   validator,
		orders:      orders,
		limiter:     limiter,
		invalidator: invalidator,
		mailer:      mail,
	}
}

func (s *checkoutService) GetCheckout(ctx context.Context, customerID string) (*models.CheckoutView, error) {
	return s.step(ctx, customerID, false, func(*cart.Store, *checkout.Machine) error { return nil })
}

// SubmitShipping validates the address form and, when every field is accepted, moves the
// flow to payment. A rejected form leaves the flow where it was.
func (s *checkoutService) SubmitShipping(ctx context.Context, customerID string, in models.ShippingAddressInput) (*models.CheckoutView, error) {
	shipping, err := s.validator.Shipping(in)
	if err != nil {
		return nil, err
	}

	return s.step(ctx, customerID, true, func(store *cart.Store, m *checkout.Machine) error {
		if store.ItemCount() == 0 {
			return errors.BadRequestError("Cannot check out an empty cart")
		}
		return m.AdvanceToPayment(shipping)
	})
}

func (s *checkoutService) SubmitPayment(ctx context.Context, customerID string, in models.PaymentMethodInput) (*models.CheckoutView, error) {
	payment, err := s.validator.Payment(in)
	if err != nil {
		return nil, err
	}

	return s.step(ctx, customerID, true, func(_ *cart.Store, m *checkout.Machine) error {
		return m.AdvanceToConfirmation(payment)
	})
}

func (s *checkoutService) Back(ctx context.Context, customerID string) (*models.CheckoutView, error) {
	return s.step(ctx, customerID, true, func(_ *cart.Store, m *checkout.Machine) error {
		m.Back()
		return nil
	})
}

func (s *checkoutService) Reset(ctx context.Context, customerID string) (*models.CheckoutView, error) {
	return s.step(ctx, customerID, true, func(_ *cart.Store, m *checkout.Machine) error {
		m.Reset()
		return nil
	})
}

// step runs fn under the session lock and renders the resulting view. While an order is
// being submitted only reads are allowed.
func (s *checkoutService) step(ctx context.Context, customerID string, mutates bool, fn func(*cart.Store, *checkout.Machine) error) (*models.CheckoutView, error) {
	sess, err := s.sessions.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var view *models.CheckoutView

	err = sess.Do(func(store *cart.Store, m *checkout.Machine) error {
		if mutates && sess.Submitting() {
			return errors.ConflictError("Checkout cannot change while an order is being submitted")
		}

		if err := fn(store, m); err != nil {
			return err
		}

		view = buildView(store, m)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// SubmitOrder sends the confirmed checkout to the order API. Failures leave the cart and the
// confirmation step untouched so the customer can resubmit with the same idempotency key.
func (s *checkoutService) SubmitOrder(ctx context.Context, customer *models.Claims) (*models.Order, error) {
	logger := middleware.LoggerFromContext(ctx)
	customerID := customer.UserID.String()

	sess, err := s.sessions.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	// local preconditions first: an empty cart must not cost a network call
	if err := sess.Do(func(store *cart.Store, m *checkout.Machine) error {
		_, err := prepareSubmission(sess, store, m, customer.UserID)
		return err
	}); err != nil {
		metrics.RecordOrderSubmission(metrics.SubmissionRejected)
		return nil, err
	}

	if err := s.checkRateLimit(ctx, customerID); err != nil {
		metrics.RecordOrderSubmission(metrics.SubmissionRateLimited)
		return nil, err
	}

	var req *models.CreateOrderRequest

	if err := sess.Do(func(store *cart.Store, m *checkout.Machine) error {
		prepared, err := prepareSubmission(sess, store, m, customer.UserID)
		if err != nil {
			return err
		}
		if !sess.BeginSubmit() {
			return errors.ConflictError("An order submission is already in progress")
		}
		req = prepared
		return nil
	}); err != nil {
		metrics.RecordOrderSubmission(metrics.SubmissionRejected)
		return nil, err
	}

	logger.Info("Submitting order",
		slog.String("customer_id", customerID),
		slog.String("idempotency_key", req.IdempotencyKey),
		slog.Int("items", len(req.Items)),
	)

	order, callErr := s.orders.CreateOrder(ctx, req)

	err = sess.Do(func(store *cart.Store, m *checkout.Machine) error {
		defer sess.EndSubmit()

		if callErr != nil {
			return callErr
		}

		if err := m.Complete(order); err != nil {
			return err
		}
		store.Clear()

		return nil
	})
	if callErr != nil {
		logger.Error("Order submission failed",
			slog.String("customer_id", customerID),
			slog.String("idempotency_key", req.IdempotencyKey),
			slog.Any("error", callErr),
		)
		metrics.RecordOrderSubmission(metrics.SubmissionFailed)

		return nil, submissionFailure(callErr)
	}
	if err != nil {
		metrics.RecordOrderSubmission(metrics.SubmissionFailed)
		return nil, err
	}

	metrics.RecordOrderSubmission(metrics.SubmissionSuccess)
	logger.Info("Order submitted", slog.String("order_id", order.ID.String()), slog.String("customer_id", customerID))

	s.invalidator.Invalidate(ctx, customer.UserID, order.ID)
	s.sendConfirmation(customer.Email, order)

	return order, nil
}

// prepareSubmission checks the submission preconditions and builds the order request.
func prepareSubmission(sess *session.Session, store *cart.Store, m *checkout.Machine, customerID uuid.UUID) (*models.CreateOrderRequest, error) {
	if sess.Submitting() {
		return nil, errors.ConflictError("An order submission is already in progress")
	}

	if m.Step() != models.CheckoutStepConfirmation {
		return nil, errors.ConflictError("Order can only be submitted from the confirmation step")
	}

	snapshot := store.Snapshot()
	if snapshot.IsEmpty() {
		return nil, errors.BadRequestError("Cannot submit an order with an empty cart")
	}

	address, _ := m.Shipping()
	method, _ := m.Payment()

	payment, err := models.PaymentInputFrom(method)
	if err != nil {
		return nil, errors.PreconditionError("confirmed payment method cannot be sent").WithError(err)
	}

	return &models.CreateOrderRequest{
		CustomerID:      customerID,
		IdempotencyKey:  m.IdempotencyKey(),
		ShippingAddress: address.ToInput(),
		PaymentMethod:   payment,
		Items:           models.OrderItemsFromCart(snapshot),
	}, nil
}

// checkRateLimit lets the submission through when the limiter itself is unavailable.
func (s *checkoutService) checkRateLimit(ctx context.Context, customerID string) error {
	allowed, _, retryAfter, err := s.limiter.CheckSubmissionRateLimit(ctx, customerID)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Submission rate limit unavailable", slog.Any("error", err))
		return nil
	}

	if !allowed {
		return errors.TooManyRequestsError("Too many order submissions, try again later", retryAfter)
	}

	return nil
}

// submissionFailure keeps field errors reported by the order API so the form can show them.
func submissionFailure(cause error) *errors.AppError {
	appErr := errors.SubmissionError("Order submission failed").WithError(cause)

	if inner, ok := errors.IsAppError(cause); ok {
		appErr.Detail = inner.Message
		if len(inner.Fields) > 0 {
			appErr.Fields = inner.Fields
		}
	}

	return appErr
}

func (s *checkoutService) sendConfirmation(to string, order *models.Order) {
	if to == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
		defer cancel()

		msg, err := mailer.OrderConfirmation(to, order)
		if err == nil {
			err = s.mailer.Send(ctx, msg)
		}
		if err != nil {
			slog.Error("Failed to send order confirmation",
				slog.String("order_id", order.ID.String()),
				slog.Any("error", err),
			)
		}
	}()
}

func buildView(store *cart.Store, m *checkout.Machine) *models.CheckoutView {
	snapshot := store.Snapshot()
	if snapshot.Items == nil {
		snapshot.Items = []models.CartItem{}
	}

	view := &models.CheckoutView{
		Step:      m.Step(),
		Items:     snapshot.Items,
		ItemCount: snapshot.ItemCount(),
		Total:     snapshot.Total(),
		Order:     m.Order(),
	}

	if address, ok := m.Shipping(); ok {
		view.ShippingAddress = &address
	}

	if method, ok := m.Payment(); ok {
		if summary, err := models.SummarizePayment(method); err == nil {
			view.Payment = &summary
		}
	}

	return view
}
