package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	service "github.com/aaravmahajanofficial/storefront-checkout/internal/services"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils/response"
	paymentClient "github.com/aaravmahajanofficial/storefront-checkout/pkg/stripe"
)

const maxWebhookBytes = 64 << 10

type PaymentWebhookHandler struct {
	payments     paymentClient.Client
	orderService service.OrderService
}

func NewPaymentWebhookHandler(payments paymentClient.Client, orderService service.OrderService) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{payments: payments, orderService: orderService}
}

// HandleWebhook godoc
//
//	@Summary		Receive a Stripe event
//	@Description	Verifies the Stripe-Signature header and records payment intent outcomes on the matching order. Other event types are acknowledged and ignored.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			Stripe-Signature	header		string					true	"Stripe signature"
//	@Success		200					{object}	response.APIResponse	"Event accepted"
//	@Failure		400					{object}	response.ErrorResponse	"Invalid payload or signature"
//	@Failure		500					{object}	response.ErrorResponse	"Event could not be recorded"
//	@Router			/payments/webhook [post]
func (h *PaymentWebhookHandler) HandleWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBytes))
		if err != nil {
			response.Error(w, errors.BadRequestError("Failed to read request body").WithError(err))
			return
		}

		event, err := h.payments.ParseWebhook(payload, r.Header.Get("Stripe-Signature"))
		if err != nil {
			logger.Warn("Rejected webhook", slog.Any("error", err))
			response.Error(w, errors.BadRequestError("Invalid webhook signature or payload").WithError(err))
			return
		}

		if err := h.orderService.HandlePaymentEvent(r.Context(), event); err != nil {
			logger.Error("Failed to apply payment event",
				slog.String("type", event.Type),
				slog.String("paymentIntentID", event.PaymentIntentID),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"received": event.Type})
	}
}
