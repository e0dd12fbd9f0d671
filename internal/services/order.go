package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/validation"
	paymentClient "github.com/aaravmahajanofficial/storefront-checkout/pkg/stripe"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderAPI creates and reads orders. It is served by OrderService or by a remote instance
// of it through NewRemoteOrderAPI.
type OrderAPI interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, customerID, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, customerID uuid.UUID, page, size int) ([]models.Order, int, error)
}

type OrderService interface {
	OrderAPI
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
	HandlePaymentEvent(ctx context.Context, event *paymentClient.PaymentEvent) error
}

type orderService struct {
	repo        repository.OrderRepository
	validator   *validation.Validator
	payments    paymentClient.Client
	invalidator OrderInvalidator
	now         func() time.Time
}

// NewOrderService builds the PostgreSQL-backed order API. payments may be nil, in which
// case every order is left for offline payment.
func NewOrderService(repo repository.OrderRepository, validator *validation.Validator, payments paymentClient.Client, invalidator OrderInvalidator) OrderService {
	return &orderService{
		repo:        repo,
		validator:   validator,
		payments:    payments,
		invalidator: invalidator,
		now:         time.Now,
	}
}

// CreateOrder validates the request at this boundary again, since it may come from any
// client. A request repeating a known idempotency key returns the order created first.
func (s *orderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	logger := middleware.LoggerFromContext(ctx)

	shipping, payment, err := s.validateRequest(req)
	if err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" {
		existing, err := s.repo.GetOrderByIdempotencyKey(ctx, req.CustomerID, req.IdempotencyKey)
		switch {
		case err == nil:
			logger.Info("Returning order for repeated idempotency key", slog.String("order_id", existing.ID.String()))
			return existing, nil
		case !stdErrors.Is(err, sql.ErrNoRows):
			return nil, errors.DatabaseError("Failed to look up order").WithError(err)
		}
	}

	summary, err := models.SummarizePayment(payment.Method())
	if err != nil {
		return nil, errors.PreconditionError("accepted payment method has no summary").WithError(err)
	}

	now := s.now().UTC()
	order := &models.Order{
		ID:              orderIDFor(req.CustomerID, req.IdempotencyKey),
		CustomerID:      req.CustomerID,
		IdempotencyKey:  req.IdempotencyKey,
		Status:          models.OrderStatusPending,
		Payment:         summary,
		PaymentStatus:   models.PaymentStatusPending,
		ShippingAddress: shipping.Address(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	total := decimal.Zero
	for _, item := range req.Items {
		item.ID = uuid.New()
		item.OrderID = order.ID
		item.CreatedAt = now
		order.Items = append(order.Items, item)
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	order.Total = total

	if err := s.attachPayment(ctx, order, payment.Method().Kind()); err != nil {
		return nil, err
	}

	err = s.repo.CreateOrder(ctx, order)
	if stdErrors.Is(err, repository.ErrDuplicateOrder) {
		// a concurrent request with the same key won the insert
		existing, getErr := s.repo.GetOrderByIdempotencyKey(ctx, req.CustomerID, req.IdempotencyKey)
		if getErr != nil {
			return nil, errors.DatabaseError("Failed to look up order").WithError(getErr)
		}
		return existing, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to create order").WithError(err)
	}

	logger.Info("Order created",
		slog.String("order_id", order.ID.String()),
		slog.String("total", order.Total.String()),
		slog.String("payment", string(order.Payment.Type)),
	)

	return order, nil
}

// orderNamespace scopes order ids derived from idempotency keys.
var orderNamespace = uuid.MustParse("5b0c9a8e-3f4d-4c61-9d2e-7a1f0e6b8c33")

// orderIDFor is stable for a (customer, key) pair, so a retried submission sends the payment
// provider the same parameters under the same idempotency key.
func orderIDFor(customerID uuid.UUID, idempotencyKey string) uuid.UUID {
	if idempotencyKey == "" {
		return uuid.New()
	}
	return uuid.NewSHA1(orderNamespace, []byte(customerID.String()+":"+idempotencyKey))
}

// validateRequest reports every rejected field of the request at once.
func (s *orderService) validateRequest(req *models.CreateOrderRequest) (validation.Shipping, validation.Payment, error) {
	fields := map[string]string{}

	if err := s.validator.Struct(req); err != nil {
		appErr, ok := errors.IsAppError(err)
		if !ok {
			return validation.Shipping{}, validation.Payment{}, err
		}
		// address and payment are judged below on their cleaned values
		for field, msg := range appErr.Fields {
			if !strings.HasPrefix(field, "shipping_address.") && !strings.HasPrefix(field, "payment_method.") {
				fields[field] = msg
			}
		}
	}

	shipping, err := s.validator.Shipping(req.ShippingAddress)
	mergeFields(fields, "shipping_address.", err)

	payment, err := s.validator.Payment(req.PaymentMethod)
	mergeFields(fields, "payment_method.", err)

	if req.CustomerID == uuid.Nil {
		fields["customer_id"] = "is required"
	}

	if len(fields) > 0 {
		return validation.Shipping{}, validation.Payment{}, errors.FieldValidationError(fields)
	}

	return shipping, payment, nil
}

func mergeFields(fields map[string]string, prefix string, err error) {
	if appErr, ok := errors.IsAppError(err); ok {
		for field, msg := range appErr.Fields {
			fields[prefix+field] = msg
		}
	}
}

// attachPayment opens a payment intent for methods collected through Stripe.
func (s *orderService) attachPayment(ctx context.Context, order *models.Order, kind models.PaymentKind) error {
	if s.payments == nil {
		return nil
	}

	intent, err := s.payments.CreatePaymentIntent(ctx, paymentClient.IntentRequest{
		OrderID:        order.ID,
		CustomerID:     order.CustomerID,
		Amount:         order.Total,
		Kind:           kind,
		IdempotencyKey: order.IdempotencyKey,
		Description:    "Order " + order.ID.String(),
	})
	if stdErrors.Is(err, paymentClient.ErrUnsupportedMethod) {
		return nil
	}
	if err != nil {
		return errors.ThirdPartyError("Failed to create payment").WithError(err)
	}

	order.PaymentIntentID = intent.ID
	order.PaymentStatus = intent.Status

	return nil
}

// GetOrder hides orders of other customers behind NotFound.
func (s *orderService) GetOrder(ctx context.Context, customerID, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, id)
	if stdErrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	if order.CustomerID != customerID {
		return nil, errors.NotFoundError("Order not found")
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, customerID uuid.UUID, page, size int) ([]models.Order, int, error) {
	orders, total, err := s.repo.ListOrdersByCustomer(ctx, customerID, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, total, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	err := s.repo.UpdateOrderStatus(ctx, id, status)
	if stdErrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to update order status").WithError(err)
	}

	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	s.invalidator.Invalidate(ctx, order.CustomerID, order.ID)

	return order, nil
}

// HandlePaymentEvent records the payment outcome Stripe reports for an order. Events about
// intents this service did not create are ignored.
func (s *orderService) HandlePaymentEvent(ctx context.Context, event *paymentClient.PaymentEvent) error {
	logger := middleware.LoggerFromContext(ctx)

	if event.PaymentIntentID == "" {
		logger.Debug("Ignoring payment event", slog.String("type", event.Type))
		return nil
	}

	orderID, customerID, err := s.repo.UpdatePaymentStatus(ctx, event.PaymentIntentID, event.Status)
	if stdErrors.Is(err, sql.ErrNoRows) {
		logger.Warn("Payment event for unknown intent", slog.String("payment_intent_id", event.PaymentIntentID))
		return nil
	}
	if err != nil {
		return errors.DatabaseError("Failed to update payment status").WithError(err)
	}

	logger.Info("Payment status updated",
		slog.String("order_id", orderID.String()),
		slog.String("status", string(event.Status)),
	)

	s.invalidator.Invalidate(ctx, customerID, orderID)

	return nil
}
