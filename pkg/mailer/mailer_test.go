package mailer_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/pkg/mailer"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sendgridV3Payload struct {
	Personalizations []struct {
		To      []map[string]string `json:"to"`
		Bcc     []map[string]string `json:"bcc,omitempty"`
		Subject string              `json:"subject"`
	} `json:"personalizations"`
	From    map[string]string `json:"from"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func startMockServer(t *testing.T, status int, payload *sendgridV3Payload) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		assert.Equal(t, "Bearer SG.test-api-key", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		if err := json.Unmarshal(body, payload); err != nil {
			http.Error(w, "Failed to unmarshal request body", http.StatusBadRequest)
			return
		}

		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)

	return server
}

func TestSendGridMailer_Send(t *testing.T) {
	msg := &models.EmailMessage{
		To:          "customer@example.com",
		Subject:     "Hello",
		Content:     "plain body",
		HTMLContent: "<p>html body</p>",
		BCC:         []string{"audit@example.com"},
	}

	t.Run("Success - Builds V3 Payload", func(t *testing.T) {
		// Arrange
		var payload sendgridV3Payload
		server := startMockServer(t, http.StatusAccepted, &payload)
		m := mailer.NewSendGridMailer("SG.test-api-key", "from@example.com", "Storefront", mailer.WithBaseURL(server.URL))

		// Act
		err := m.Send(t.Context(), msg)

		// Assert
		require.NoError(t, err)
		require.Len(t, payload.Personalizations, 1)
		assert.Equal(t, "customer@example.com", payload.Personalizations[0].To[0]["email"])
		assert.Equal(t, "audit@example.com", payload.Personalizations[0].Bcc[0]["email"])
		assert.Equal(t, "Hello", payload.Personalizations[0].Subject)
		assert.Equal(t, "Storefront", payload.From["name"])
		require.Len(t, payload.Content, 2)
		assert.Equal(t, "text/plain", payload.Content[0].Type)
		assert.Equal(t, "text/html", payload.Content[1].Type)
	})

	t.Run("Success - Plain Text Only", func(t *testing.T) {
		// Arrange
		var payload sendgridV3Payload
		server := startMockServer(t, http.StatusAccepted, &payload)
		m := mailer.NewSendGridMailer("SG.test-api-key", "from@example.com", "Storefront", mailer.WithBaseURL(server.URL))

		// Act
		err := m.Send(t.Context(), &models.EmailMessage{To: "a@example.com", Subject: "s", Content: "c"})

		// Assert
		require.NoError(t, err)
		assert.Len(t, payload.Content, 1)
	})

	t.Run("Failure - Provider Rejects", func(t *testing.T) {
		// Arrange
		var payload sendgridV3Payload
		server := startMockServer(t, http.StatusUnauthorized, &payload)
		m := mailer.NewSendGridMailer("SG.test-api-key", "from@example.com", "Storefront", mailer.WithBaseURL(server.URL))

		// Act
		err := m.Send(t.Context(), msg)

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status code: 401")
	})
}

func TestLogMailer(t *testing.T) {
	m := mailer.NewLogMailer(slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.NoError(t, m.Send(t.Context(), &models.EmailMessage{To: "a@example.com", Subject: "s"}))
}

func TestOrderConfirmation(t *testing.T) {
	order := &models.Order{
		ID:    uuid.New(),
		Total: decimal.NewFromInt(3000),
		Items: []models.OrderItem{
			{Name: "<Tea & Cups>", Quantity: 2, UnitPrice: decimal.NewFromInt(1500)},
		},
		ShippingAddress: models.ShippingAddress{LastName: "Yamada", FirstName: "Taro", PostalCode: "100-0005"},
	}

	msg, err := mailer.OrderConfirmation("taro@example.com", order)

	require.NoError(t, err)
	assert.Equal(t, "taro@example.com", msg.To)
	assert.Contains(t, msg.Subject, order.ID.String()[:8])
	assert.Contains(t, msg.Content, "<Tea & Cups> x2  1500")
	assert.Contains(t, msg.Content, "Total: 3000")
	assert.Contains(t, msg.HTMLContent, "&lt;Tea &amp; Cups&gt;")
	assert.NotContains(t, msg.HTMLContent, "<Tea")
}
