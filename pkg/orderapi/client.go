// Package orderapi is an HTTP client for a remote order-creation API that speaks the same
// JSON envelope as this service.
package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// APIError is a non-2xx answer from the order API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("order api responded %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// ClientError reports whether the API rejected the request itself rather than failing.
func (e *APIError) ClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

type page struct {
	Data  []models.Order `json:"data"`
	Total int            `json:"total"`
}

type Settings struct {
	BaseURL            string
	Timeout            time.Duration
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
}

type Option func(*Client)

// WithTokenSource sets where the bearer token forwarded with each call comes from.
func WithTokenSource(source func(ctx context.Context) string) Option {
	return func(c *Client) {
		c.token = source
	}
}

// WithHTTPClient replaces the instrumented default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	token   func(ctx context.Context) string
}

func NewClient(settings Settings, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(settings.BaseURL, "/"),
		http: &http.Client{
			Timeout:   settings.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		token: func(context.Context) string { return "" },
	}

	maxFailures := settings.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "order-api",
		Timeout: settings.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// rejected requests say nothing about the health of the API
		IsSuccessful: func(err error) bool {
			var apiErr *APIError
			return err == nil || (errors.As(err, &apiErr) && apiErr.ClientError())
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CreateOrder posts the order request. The idempotency key travels as the Idempotency-Key
// header so a retried submission returns the order created by the first one.
func (c *Client) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order request: %w", err)
	}

	headers := http.Header{}
	if req.IdempotencyKey != "" {
		headers.Set("Idempotency-Key", req.IdempotencyKey)
	}

	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/api/v1/orders", headers, body, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

// GetOrder fetches one order of the calling customer. The API scopes reads by token, so
// customerID is not sent.
func (c *Client) GetOrder(ctx context.Context, _ uuid.UUID, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, "/api/v1/orders/"+id.String(), nil, nil, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (c *Client) ListOrders(ctx context.Context, _ uuid.UUID, pageNum, size int) ([]models.Order, int, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(pageNum))
	query.Set("size", strconv.Itoa(size))

	var result page
	if err := c.do(ctx, http.MethodGet, "/api/v1/orders?"+query.Encode(), nil, nil, &result); err != nil {
		return nil, 0, err
	}

	return result.Data, result.Total, nil
}

func (c *Client) do(ctx context.Context, method, path string, headers http.Header, body []byte, dest any) error {
	data, err := c.breaker.Execute(func() ([]byte, error) {
		return c.roundTrip(ctx, method, path, headers, body)
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode order api response: %w", err)
	}

	return nil
}

// roundTrip returns the envelope's data on success.
func (c *Client) roundTrip(ctx context.Context, method, path string, headers http.Header, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build order api request: %w", err)
	}

	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order api request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read order api response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= 300 || decodeErr != nil || !env.Success {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: "UNEXPECTED_RESPONSE", Message: http.StatusText(resp.StatusCode)}
		if decodeErr == nil && env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
			apiErr.Fields = env.Error.Fields
		}
		return nil, apiErr
	}

	return env.Data, nil
}
