package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrUnsupportedMethod is returned for payment kinds settled outside Stripe.
var ErrUnsupportedMethod = errors.New("payment method is not collected through stripe")

// IntentRequest describes the amount an order asks to collect.
type IntentRequest struct {
	OrderID        uuid.UUID
	CustomerID     uuid.UUID
	Amount         decimal.Decimal
	Kind           models.PaymentKind
	IdempotencyKey string
	Description    string
}

type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       models.PaymentStatus
}

// PaymentEvent is a verified webhook notification about a payment intent.
type PaymentEvent struct {
	Type            string
	PaymentIntentID string
	Status          models.PaymentStatus
}

// Client collects order payments.
type Client interface {
	CreatePaymentIntent(ctx context.Context, req IntentRequest) (*PaymentIntent, error)
	ParseWebhook(payload []byte, signature string) (*PaymentEvent, error)
	Ping(ctx context.Context) error
}

type Settings struct {
	APIKey        string
	Currency      string
	WebhookSecret string
	// BackendURL replaces https://api.stripe.com when set.
	BackendURL string
}

type stripeClient struct {
	api           *client.API
	currency      string
	webhookSecret string
}

func NewStripeClient(settings Settings) Client {
	config := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		MaxNetworkRetries: stripe.Int64(2),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	}
	if settings.BackendURL != "" {
		config.URL = stripe.String(settings.BackendURL)
	}

	api := &client.API{}
	api.Init(settings.APIKey, &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, config),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, config),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, config),
	})

	return &stripeClient{
		api:           api,
		currency:      strings.ToLower(settings.Currency),
		webhookSecret: settings.WebhookSecret,
	}
}

// PaymentIntent == "planned payment" or order waiting for payment. The customer's browser
// confirms it with the client secret; webhooks report the outcome.
func (s *stripeClient) CreatePaymentIntent(ctx context.Context, req IntentRequest) (*PaymentIntent, error) {
	methodType, err := methodTypeFor(req.Kind)
	if err != nil {
		return nil, err
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(ToMinorUnits(req.Amount, s.currency)),
		Currency:           stripe.String(s.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{methodType}),
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}

	params.Context = ctx
	params.AddMetadata("order_id", req.OrderID.String())
	params.AddMetadata("customer_id", req.CustomerID.String())
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey("order-" + req.IdempotencyKey)
	}

	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       statusOf(intent.Status),
	}, nil
}

// Ping reads the account balance, which any restricted key may do.
func (s *stripeClient) Ping(ctx context.Context) error {
	params := &stripe.BalanceParams{}
	params.Context = ctx

	if _, err := s.api.Balance.Get(params); err != nil {
		return fmt.Errorf("failed to reach stripe: %w", err)
	}

	return nil
}

// ParseWebhook verifies the Stripe-Signature header and extracts the payment intent the event is about.
func (s *stripeClient) ParseWebhook(payload []byte, signature string) (*PaymentEvent, error) {
	if s.webhookSecret == "" {
		return nil, errors.New("webhook secret not configured")
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("invalid webhook signature: %w", err)
	}

	if !strings.HasPrefix(string(event.Type), "payment_intent.") {
		return &PaymentEvent{Type: string(event.Type)}, nil
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return nil, fmt.Errorf("failed to decode payment intent: %w", err)
	}

	return &PaymentEvent{
		Type:            string(event.Type),
		PaymentIntentID: intent.ID,
		Status:          eventStatus(event.Type, intent.Status),
	}, nil
}

// eventStatus trusts the event type over the intent status: a failed attempt leaves the
// intent in requires_payment_method, which alone reads as pending.
func eventStatus(eventType stripe.EventType, status stripe.PaymentIntentStatus) models.PaymentStatus {
	switch eventType {
	case stripe.EventTypePaymentIntentPaymentFailed, stripe.EventTypePaymentIntentCanceled:
		return models.PaymentStatusFailed
	case stripe.EventTypePaymentIntentSucceeded:
		return models.PaymentStatusPaid
	case stripe.EventTypePaymentIntentAmountCapturableUpdated:
		return models.PaymentStatusAuthorized
	default:
		return statusOf(status)
	}
}

func methodTypeFor(kind models.PaymentKind) (string, error) {
	switch kind {
	case models.PaymentKindCreditCard:
		return "card", nil
	case models.PaymentKindConvenienceStore:
		return "konbini", nil
	default:
		return "", ErrUnsupportedMethod
	}
}

func statusOf(status stripe.PaymentIntentStatus) models.PaymentStatus {
	switch status {
	case stripe.PaymentIntentStatusSucceeded:
		return models.PaymentStatusPaid
	case stripe.PaymentIntentStatusRequiresCapture:
		return models.PaymentStatusAuthorized
	case stripe.PaymentIntentStatusCanceled:
		return models.PaymentStatusFailed
	default:
		return models.PaymentStatusPending
	}
}

// currencies Stripe charges in whole units
var zeroDecimal = map[string]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true, "kmf": true, "krw": true, "mga": true,
	"pyg": true, "rwf": true, "ugx": true, "vnd": true, "vuv": true, "xaf": true, "xof": true, "xpf": true,
}

// ToMinorUnits converts amount to the smallest unit of currency, rounding half away from zero.
func ToMinorUnits(amount decimal.Decimal, currency string) int64 {
	if zeroDecimal[strings.ToLower(currency)] {
		return amount.Round(0).IntPart()
	}

	return amount.Shift(2).Round(0).IntPart()
}
