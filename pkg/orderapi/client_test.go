package orderapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/pkg/orderapi"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, payload map[string]any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(payload))
}

func newRequest() *models.CreateOrderRequest {
	return &models.CreateOrderRequest{
		CustomerID:     uuid.New(),
		IdempotencyKey: "key-1",
		ShippingAddress: models.ShippingAddressInput{
			LastName: "Yamada", FirstName: "Taro", PostalCode: "100-0005", Prefecture: "Tokyo",
			City: "Chiyoda", Address1: "1-1", Phone: "0312345678",
		},
		PaymentMethod: models.PaymentMethodInput{Type: models.PaymentKindBankTransfer},
		Items: []models.OrderItem{
			{ProductID: "p1", Name: "Widget", Quantity: 2, UnitPrice: decimal.NewFromInt(500)},
		},
	}
}

func TestCreateOrder(t *testing.T) {
	t.Run("Success - Forwards Token And Idempotency Key", func(t *testing.T) {
		// Arrange
		orderID := uuid.New()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/v1/orders", r.URL.Path)
			assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
			assert.Equal(t, "key-1", r.Header.Get("Idempotency-Key"))

			var body models.CreateOrderRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Len(t, body.Items, 1)

			writeEnvelope(t, w, http.StatusCreated, map[string]any{
				"success": true,
				"data":    map[string]any{"id": orderID, "status": "pending", "total": "1000"},
			})
		}))
		defer server.Close()

		client := orderapi.NewClient(orderapi.Settings{BaseURL: server.URL, Timeout: time.Second},
			orderapi.WithTokenSource(func(context.Context) string { return "token-abc" }))

		// Act
		order, err := client.CreateOrder(context.Background(), newRequest())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, orderID, order.ID)
		assert.True(t, decimal.NewFromInt(1000).Equal(order.Total))
	})

	t.Run("Failure - Validation Error Is A Client Error", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(t, w, http.StatusBadRequest, map[string]any{
				"success": false,
				"error": map[string]any{
					"code":    "VALIDATION_ERROR",
					"message": "Validation failed",
					"fields":  map[string]string{"shipping_address.phone": "is required"},
				},
			})
		}))
		defer server.Close()

		client := orderapi.NewClient(orderapi.Settings{BaseURL: server.URL, Timeout: time.Second})

		// Act
		order, err := client.CreateOrder(context.Background(), newRequest())

		// Assert
		assert.Nil(t, order)
		var apiErr *orderapi.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.True(t, apiErr.ClientError())
		assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
		assert.Equal(t, "is required", apiErr.Fields["shipping_address.phone"])
	})

	t.Run("Failure - Non JSON Body", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		}))
		defer server.Close()

		client := orderapi.NewClient(orderapi.Settings{BaseURL: server.URL, Timeout: time.Second})

		// Act
		_, err := client.CreateOrder(context.Background(), newRequest())

		// Assert
		var apiErr *orderapi.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		assert.Equal(t, "UNEXPECTED_RESPONSE", apiErr.Code)
	})
}

func TestCircuitBreaker(t *testing.T) {
	t.Run("Server Errors Open The Breaker", func(t *testing.T) {
		// Arrange
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := orderapi.NewClient(orderapi.Settings{
			BaseURL:            server.URL,
			Timeout:            time.Second,
			BreakerMaxFailures: 2,
			BreakerOpenTimeout: time.Minute,
		})

		// Act
		for range 2 {
			_, err := client.CreateOrder(context.Background(), newRequest())
			require.Error(t, err)
		}
		_, err := client.CreateOrder(context.Background(), newRequest())

		// Assert
		assert.ErrorIs(t, err, gobreaker.ErrOpenState)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("Client Errors Keep The Breaker Closed", func(t *testing.T) {
		// Arrange
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			writeEnvelope(t, w, http.StatusConflict, map[string]any{
				"success": false,
				"error":   map[string]any{"code": "CONFLICT", "message": "duplicate"},
			})
		}))
		defer server.Close()

		client := orderapi.NewClient(orderapi.Settings{BaseURL: server.URL, Timeout: time.Second, BreakerMaxFailures: 1})

		// Act
		for range 3 {
			_, err := client.CreateOrder(context.Background(), newRequest())
			require.Error(t, err)
		}

		// Assert
		assert.Equal(t, int32(3), calls.Load())
	})
}

func TestGetAndListOrders(t *testing.T) {
	orderID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/orders/" + orderID.String():
			writeEnvelope(t, w, http.StatusOK, map[string]any{
				"success": true,
				"data":    map[string]any{"id": orderID, "status": "shipped"},
			})
		case "/api/v1/orders":
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "5", r.URL.Query().Get("size"))
			writeEnvelope(t, w, http.StatusOK, map[string]any{
				"success": true,
				"data": map[string]any{
					"data":  []map[string]any{{"id": orderID}},
					"total": 6,
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := orderapi.NewClient(orderapi.Settings{BaseURL: server.URL + "/", Timeout: time.Second})

	t.Run("Success - Get", func(t *testing.T) {
		order, err := client.GetOrder(context.Background(), uuid.New(), orderID)

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusShipped, order.Status)
	})

	t.Run("Success - List", func(t *testing.T) {
		orders, total, err := client.ListOrders(context.Background(), uuid.New(), 2, 5)

		require.NoError(t, err)
		assert.Equal(t, 6, total)
		require.Len(t, orders, 1)
		assert.Equal(t, orderID, orders[0].ID)
	})

	t.Run("Failure - Unknown Order", func(t *testing.T) {
		_, err := client.GetOrder(context.Background(), uuid.New(), uuid.New())

		var apiErr *orderapi.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})
}
