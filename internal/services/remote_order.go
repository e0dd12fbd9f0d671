package service

import (
	"context"
	stdErrors "errors"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/pkg/orderapi"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
)

type remoteOrderAPI struct {
	client *orderapi.Client
}

// NewRemoteOrderAPI serves OrderAPI from a remote order service, translating its answers
// into AppErrors.
func NewRemoteOrderAPI(client *orderapi.Client) OrderAPI {
	return &remoteOrderAPI{client: client}
}

func (r *remoteOrderAPI) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	order, err := r.client.CreateOrder(ctx, req)
	if err != nil {
		return nil, remoteError(err, "Failed to create order")
	}

	return order, nil
}

func (r *remoteOrderAPI) GetOrder(ctx context.Context, customerID, id uuid.UUID) (*models.Order, error) {
	order, err := r.client.GetOrder(ctx, customerID, id)
	if err != nil {
		return nil, remoteError(err, "Failed to fetch order")
	}

	return order, nil
}

func (r *remoteOrderAPI) ListOrders(ctx context.Context, customerID uuid.UUID, page, size int) ([]models.Order, int, error) {
	orders, total, err := r.client.ListOrders(ctx, customerID, page, size)
	if err != nil {
		return nil, 0, remoteError(err, "Failed to fetch orders")
	}

	return orders, total, nil
}

func remoteError(err error, message string) *errors.AppError {
	if stdErrors.Is(err, gobreaker.ErrOpenState) || stdErrors.Is(err, gobreaker.ErrTooManyRequests) {
		e := errors.ThirdPartyError("Order service is temporarily unavailable").WithError(err)
		e.Retryable = true
		return e
	}

	var apiErr *orderapi.APIError
	if !stdErrors.As(err, &apiErr) {
		e := errors.ThirdPartyError(message).WithError(err)
		e.Retryable = true
		return e
	}

	switch apiErr.StatusCode {
	case http.StatusNotFound:
		return errors.NotFoundError("Order not found").WithError(err)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if len(apiErr.Fields) > 0 {
			return errors.FieldValidationError(apiErr.Fields).WithError(err)
		}
		return errors.BadRequestError(apiErr.Message).WithError(err)
	case http.StatusConflict:
		return errors.ConflictError(apiErr.Message).WithError(err)
	case http.StatusUnauthorized:
		return errors.UnauthorizedError("Order service rejected the credentials").WithError(err)
	case http.StatusForbidden:
		return errors.ForbiddenError(apiErr.Message).WithError(err)
	default:
		e := errors.ThirdPartyError(message).WithError(err)
		e.Retryable = apiErr.StatusCode >= 500
		return e
	}
}
