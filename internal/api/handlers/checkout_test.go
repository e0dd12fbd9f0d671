package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubmitShipping(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Advances To Payment", func(t *testing.T) {
		// Arrange
		checkoutService := mocks.NewCheckoutService(t)
		handler := handlers.NewCheckoutHandler(checkoutService)
		checkoutService.On("SubmitShipping", mock.Anything, userID.String(), mock.MatchedBy(func(in models.ShippingAddressInput) bool {
			return in.PostalCode == "1000005" && in.LastName == "Yamada"
		})).Return(&models.CheckoutView{Step: models.CheckoutStepPayment}, nil).Once()

		body := `{"last_name":"Yamada","first_name":"Taro","postal_code":"1000005","prefecture":"Tokyo","city":"Chiyoda","address1":"1-1","phone":"0312345678"}`
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout/shipping", bytes.NewBufferString(body), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.SubmitShipping().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var view models.CheckoutView
		decodeEnvelope(t, rr, &view)
		assert.Equal(t, models.CheckoutStepPayment, view.Step)
	})

	t.Run("Failure - Field Errors Reported", func(t *testing.T) {
		// Arrange
		checkoutService := mocks.NewCheckoutService(t)
		handler := handlers.NewCheckoutHandler(checkoutService)
		checkoutService.On("SubmitShipping", mock.Anything, userID.String(), mock.Anything).
			Return(nil, appErrors.FieldValidationError(map[string]string{"postal_code": "must be 7 digits", "phone": "is required"})).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout/shipping", bytes.NewBufferString(`{"postal_code":"12"}`), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.SubmitShipping().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeEnvelope(t, rr, nil)
		require.NotNil(t, resp.Error)
		assert.Len(t, resp.Error.Fields, 2)
	})

	t.Run("Failure - Empty Body", func(t *testing.T) {
		// Arrange
		checkoutService := mocks.NewCheckoutService(t)
		handler := handlers.NewCheckoutHandler(checkoutService)

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout/shipping", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.SubmitShipping().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		checkoutService.AssertNotCalled(t, "SubmitShipping")
	})
}

func TestSubmitPayment(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Advances To Confirmation", func(t *testing.T) {
		// Arrange
		checkoutService := mocks.NewCheckoutService(t)
		handler := handlers.NewCheckoutHandler(checkoutService)
		checkoutService.On("SubmitPayment", mock.Anything, userID.String(), models.PaymentMethodInput{Type: models.PaymentKindConvenienceStore}).
			Return(&models.CheckoutView{Step: models.CheckoutStepConfirmation}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout/payment", bytes.NewBufferString(`{"type":"convenience_store"}`), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.SubmitPayment().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Wrong Step", func(t *testing.T) {
		// Arrange
		checkoutService := mocks.NewCheckoutService(t)
		handler := handlers.NewCheckoutHandler(checkoutService)
		checkoutService.On("SubmitPayment", mock.Anything, userID.String(), mock.Anything).
			Return(nil, appErrors.ConflictError(`checkout is at step "shipping", expected "payment"`)).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout/payment", bytes.NewBufferString(`{"type":"bank_transfer"}`), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.SubmitPayment().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestCheckoutNavigation(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Get Checkout", func(t *testing.T) {
		// Arrange
		checkoutService := mocks.NewCheckoutService(t)
		handler := handlers.NewCheckoutHandler(checkoutService)
		checkoutService.On("GetCheckout", mock.Anything, userID.String()).Return(&models.CheckoutView{Step: models.CheckoutStepShipping}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/checkout", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.GetCheckout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Success - Back", func(t *testing.T) {
		// Arrange
		checkoutService := mocks.NewCheckoutService(t)
		handler := handlers.NewCheckoutHandler(checkoutService)
		checkoutService.On("Back", mock.Anything, userID.String()).Return(&models.CheckoutView{Step: models.CheckoutStepShipping}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout/back", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Back().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Reset During Submission", func(t *testing.T) {
		// Arrange
		checkoutService := mocks.NewCheckoutService(t)
		handler := handlers.NewCheckoutHandler(checkoutService)
		checkoutService.On("Reset", mock.Anything, userID.String()).Return(nil, appErrors.ConflictError("Order submission in progress")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/checkout", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Reset().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestSubmitOrderHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Order Created", func(t *testing.T) {
		// Arrange
		checkoutService := mocks.NewCheckoutService(t)
		handler := handlers.NewCheckoutHandler(checkoutService)
		order := &models.Order{ID: uuid.New(), CustomerID: userID, Status: models.OrderStatusPending}
		checkoutService.On("SubmitOrder", mock.Anything, mock.MatchedBy(func(c *models.Claims) bool {
			return c.UserID == userID
		})).Return(order, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout/submit", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.SubmitOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		var got models.Order
		decodeEnvelope(t, rr, &got)
		assert.Equal(t, order.ID, got.ID)
	})

	t.Run("Failure - Retryable Submission Error", func(t *testing.T) {
		// Arrange
		checkoutService := mocks.NewCheckoutService(t)
		handler := handlers.NewCheckoutHandler(checkoutService)
		checkoutService.On("SubmitOrder", mock.Anything, mock.Anything).
			Return(nil, appErrors.SubmissionError("Order submission failed")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout/submit", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.SubmitOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadGateway, rr.Code)
		resp := decodeEnvelope(t, rr, nil)
		require.NotNil(t, resp.Error)
		assert.Equal(t, appErrors.ErrCodeSubmissionFailed, resp.Error.Code)
		assert.True(t, resp.Error.Retryable)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		// Arrange
		checkoutService := mocks.NewCheckoutService(t)
		handler := handlers.NewCheckoutHandler(checkoutService)
		checkoutService.On("SubmitOrder", mock.Anything, mock.Anything).
			Return(nil, appErrors.TooManyRequestsError("Too many submission attempts", 42)).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout/submit", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.SubmitOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "42", rr.Header().Get("Retry-After"))
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		checkoutService := mocks.NewCheckoutService(t)
		handler := handlers.NewCheckoutHandler(checkoutService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/checkout/submit", nil, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.SubmitOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
