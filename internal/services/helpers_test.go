package service_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repoMocks "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories/mocks"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newRegistry returns a session registry whose customers all start with an empty cart.
func newRegistry(t *testing.T) *session.Registry {
	t.Helper()

	carts := repoMocks.NewCartRepository(t)
	carts.On("GetCartByCustomerID", mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows).Maybe()
	carts.On("SaveCart", mock.Anything, mock.Anything).Return(nil).Maybe()

	registry := session.NewRegistry(carts)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		assert.NoError(t, registry.Close(ctx))
	})

	return registry
}

func requireAppError(t *testing.T, err error, code string) *appErrors.AppError {
	t.Helper()

	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)

	return appErr
}

func validShipping() models.ShippingAddressInput {
	return models.ShippingAddressInput{
		LastName:   "Yamada",
		FirstName:  "Taro",
		PostalCode: "1000005",
		Prefecture: "Tokyo",
		City:       "Chiyoda",
		Address1:   "1-1 Marunouchi",
		Phone:      "03-1234-5678",
	}
}

func cardPayment() models.PaymentMethodInput {
	return models.PaymentMethodInput{
		Type:       models.PaymentKindCreditCard,
		CardNumber: "4242424242424242",
		CardExpiry: "12/30",
		CardCVC:    "123",
	}
}

type recordingInvalidator struct {
	mu    sync.Mutex
	calls map[uuid.UUID][]uuid.UUID
}

func (r *recordingInvalidator) Invalidate(_ context.Context, customerID uuid.UUID, orderIDs ...uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.calls == nil {
		r.calls = map[uuid.UUID][]uuid.UUID{}
	}
	r.calls[customerID] = append(r.calls[customerID], orderIDs...)
}

func (r *recordingInvalidator) invalidated(customerID uuid.UUID) []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.calls[customerID]
}

type channelMailer struct {
	sent chan *models.EmailMessage
}

func newChannelMailer() *channelMailer {
	return &channelMailer{sent: make(chan *models.EmailMessage, 4)}
}

func (m *channelMailer) Send(_ context.Context, msg *models.EmailMessage) error {
	m.sent <- msg
	return nil
}
