package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	service "github.com/aaravmahajanofficial/storefront-checkout/internal/services"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils/response"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/validation"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type OrderHandler struct {
	orderService service.OrderService
	queryService service.OrderQueryService
	validator    *validation.Validator
}

// NewOrderHandler serves order reads through queryService. orderService may be nil when
// orders live behind a remote API, in which case only the read routes are registered.
func NewOrderHandler(orderService service.OrderService, queryService service.OrderQueryService, validator *validation.Validator) *OrderHandler {
	return &OrderHandler{orderService: orderService, queryService: queryService, validator: validator}
}

// CreateOrder godoc
//
//	@Summary		Create an order
//	@Description	Creates an order for the authenticated customer from a shipping address, a payment method and a cart snapshot. Repeating a request with the same idempotency key returns the original order.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			Idempotency-Key	header		string						false	"Idempotency key, used when the body carries none"
//	@Param			order			body		models.CreateOrderRequest	true	"Order details"
//	@Success		201				{object}	models.Order				"Order created"
//	@Failure		400				{object}	response.ErrorResponse		"Invalid request body or validation error"
//	@Failure		401				{object}	response.ErrorResponse		"Authentication required"
//	@Failure		502				{object}	response.ErrorResponse		"Payment provider error"
//	@Security		BearerAuth
//	@Router			/orders [post]
func (h *OrderHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireCustomer(w, r)
		if !ok {
			return
		}

		var req models.CreateOrderRequest
		if !utils.DecodeBody(r, w, &req) {
			return
		}

		req.CustomerID = claims.UserID
		if req.IdempotencyKey == "" {
			req.IdempotencyKey = r.Header.Get(IdempotencyKeyHeader)
		}

		order, err := h.orderService.CreateOrder(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create order", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order created", slog.String("orderID", order.ID.String()))
		response.Success(w, http.StatusCreated, order)
	}
}

// GetOrder godoc
//
//	@Summary		Get an order
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string					true	"Order ID"	Format(uuid)
//	@Success		200	{object}	models.Order			"Order"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid order ID"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Security		BearerAuth
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireCustomer(w, r)
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := h.queryService.GetOrder(r.Context(), claims.UserID, id)
		if err != nil {
			logger.Warn("Failed to get order", slog.String("orderID", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// ListOrders godoc
//
//	@Summary		List orders
//	@Description	Lists the authenticated customer's orders, newest first.
//	@Tags			Orders
//	@Produce		json
//	@Param			page	query		int							false	"Page number"	default(1)
//	@Param			size	query		int							false	"Page size"		default(10)	maximum(100)
//	@Success		200		{object}	models.PaginatedResponse	"Orders"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Security		BearerAuth
//	@Router			/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireCustomer(w, r)
		if !ok {
			return
		}

		page, size := utils.ParsePagination(r)

		orders, err := h.queryService.ListOrders(r.Context(), claims.UserID, page, size)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

// UpdateOrderStatus godoc
//
//	@Summary		Update an order's status
//	@Description	Admin only.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Order ID"	Format(uuid)
//	@Param			status	body		models.UpdateOrderStatusRequest	true	"New status"
//	@Success		200		{object}	models.Order					"Updated order"
//	@Failure		400		{object}	response.ErrorResponse			"Invalid request"
//	@Failure		401		{object}	response.ErrorResponse			"Authentication required"
//	@Failure		403		{object}	response.ErrorResponse			"Admin role required"
//	@Failure		404		{object}	response.ErrorResponse			"Order not found"
//	@Security		BearerAuth
//	@Router			/orders/{id}/status [patch]
func (h *OrderHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireCustomer(w, r)
		if !ok {
			return
		}

		if !claims.IsAdmin() {
			response.Error(w, errors.ForbiddenError("Admin role required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.UpdateOrderStatus(r.Context(), id, req.Status)
		if err != nil {
			logger.Error("Failed to update order status", slog.String("orderID", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order status updated", slog.String("orderID", id.String()), slog.String("status", string(order.Status)))
		response.Success(w, http.StatusOK, order)
	}
}
