package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	service "github.com/aaravmahajanofficial/storefront-checkout/internal/services"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils/response"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// GetCheckout godoc
//
//	@Summary		Get the checkout flow
//	@Description	Returns the current step, the accepted address and a masked payment summary together with the cart.
//	@Tags			Checkout
//	@Produce		json
//	@Success		200	{object}	models.CheckoutView		"Current checkout"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/checkout [get]
func (h *CheckoutHandler) GetCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireCustomer(w, r)
		if !ok {
			return
		}

		view, err := h.checkoutService.GetCheckout(r.Context(), claims.UserID.String())
		if err != nil {
			logger.Error("Failed to get checkout", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// SubmitShipping godoc
//
//	@Summary		Submit the shipping address
//	@Description	Validates the address and advances the flow to the payment step. Every invalid field is reported at once.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			address	body		models.ShippingAddressInput	true	"Shipping address"
//	@Success		200		{object}	models.CheckoutView			"Flow at payment step"
//	@Failure		400		{object}	response.ErrorResponse		"Invalid fields or empty cart"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		409		{object}	response.ErrorResponse		"Flow is not at the shipping step"
//	@Security		BearerAuth
//	@Router			/checkout/shipping [post]
func (h *CheckoutHandler) SubmitShipping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireCustomer(w, r)
		if !ok {
			return
		}

		var in models.ShippingAddressInput
		if !utils.DecodeBody(r, w, &in) {
			return
		}

		view, err := h.checkoutService.SubmitShipping(r.Context(), claims.UserID.String(), in)
		if err != nil {
			logger.Warn("Shipping address rejected", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// SubmitPayment godoc
//
//	@Summary		Submit the payment method
//	@Description	Validates the payment method and advances the flow to confirmation. Card details are never returned unmasked.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			payment	body		models.PaymentMethodInput	true	"Payment method"
//	@Success		200		{object}	models.CheckoutView			"Flow at confirmation step"
//	@Failure		400		{object}	response.ErrorResponse		"Invalid fields"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		409		{object}	response.ErrorResponse		"Flow is not at the payment step"
//	@Security		BearerAuth
//	@Router			/checkout/payment [post]
func (h *CheckoutHandler) SubmitPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireCustomer(w, r)
		if !ok {
			return
		}

		var in models.PaymentMethodInput
		if !utils.DecodeBody(r, w, &in) {
			return
		}

		view, err := h.checkoutService.SubmitPayment(r.Context(), claims.UserID.String(), in)
		if err != nil {
			logger.Warn("Payment method rejected", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// Back godoc
//
//	@Summary		Go back one step
//	@Description	Moves the flow one step backwards. Has no effect at the shipping step or after completion.
//	@Tags			Checkout
//	@Produce		json
//	@Success		200	{object}	models.CheckoutView		"Updated checkout"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		409	{object}	response.ErrorResponse	"Order submission in progress"
//	@Security		BearerAuth
//	@Router			/checkout/back [post]
func (h *CheckoutHandler) Back() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireCustomer(w, r)
		if !ok {
			return
		}

		view, err := h.checkoutService.Back(r.Context(), claims.UserID.String())
		if err != nil {
			logger.Warn("Failed to step back", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// Reset godoc
//
//	@Summary		Abandon the checkout flow
//	@Description	Returns the flow to the shipping step and discards the address and payment method. The cart is kept.
//	@Tags			Checkout
//	@Produce		json
//	@Success		200	{object}	models.CheckoutView		"Fresh checkout"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		409	{object}	response.ErrorResponse	"Order submission in progress"
//	@Security		BearerAuth
//	@Router			/checkout [delete]
func (h *CheckoutHandler) Reset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireCustomer(w, r)
		if !ok {
			return
		}

		view, err := h.checkoutService.Reset(r.Context(), claims.UserID.String())
		if err != nil {
			logger.Warn("Failed to reset checkout", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// SubmitOrder godoc
//
//	@Summary		Place the order
//	@Description	Submits the confirmed checkout. On success the cart is cleared and the flow completes. On failure the flow stays at confirmation and the same submission can be retried.
//	@Tags			Checkout
//	@Produce		json
//	@Success		201	{object}	models.Order			"Order created"
//	@Failure		400	{object}	response.ErrorResponse	"Cart is empty"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		409	{object}	response.ErrorResponse	"Not at confirmation or submission in progress"
//	@Failure		429	{object}	response.ErrorResponse	"Too many submission attempts"
//	@Failure		502	{object}	response.ErrorResponse	"Order submission failed"
//	@Security		BearerAuth
//	@Router			/checkout/submit [post]
func (h *CheckoutHandler) SubmitOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireCustomer(w, r)
		if !ok {
			return
		}

		order, err := h.checkoutService.SubmitOrder(r.Context(), claims)
		if err != nil {
			logger.Error("Order submission failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order placed", slog.String("orderID", order.ID.String()))
		response.Success(w, http.StatusCreated, order)
	}
}
