package repository_test

import (
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderRowColumns = []string{
	"id", "customer_id", "idempotency_key", "status", "total", "payment_kind", "card_last4",
	"payment_status", "payment_intent_id", "shipping_address", "created_at", "updated_at",
}

var itemRowColumns = []string{"id", "order_id", "product_id", "name", "quantity", "unit_price", "image_url", "created_at"}

func setupOrderRepoTest(t *testing.T) (repository.OrderRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	return repository.NewOrderRepository(db), mock
}

func sampleOrder(t *testing.T) (*models.Order, []byte) {
	t.Helper()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	orderID := uuid.New()

	order := &models.Order{
		ID:             orderID,
		CustomerID:     uuid.New(),
		IdempotencyKey: uuid.NewString(),
		Status:         models.OrderStatusPending,
		Total:          decimal.NewFromInt(3980),
		Payment:        models.PaymentSummary{Type: models.PaymentKindCreditCard, CardLast4: "4242"},
		PaymentStatus:  models.PaymentStatusAuthorized,
		ShippingAddress: models.ShippingAddress{
			LastName: "Yamada", FirstName: "Taro", PostalCode: "100-0005", Prefecture: "Tokyo",
			City: "Chiyoda", Address1: "1-1 Marunouchi", Phone: "03-1234-5678",
		},
		Items: []models.OrderItem{
			{ID: uuid.New(), OrderID: orderID, ProductID: "tee-01", Name: "T-shirt", Quantity: 2, UnitPrice: decimal.NewFromInt(1500), CreatedAt: now},
			{ID: uuid.New(), OrderID: orderID, ProductID: "cap-02", Name: "Cap", Quantity: 1, UnitPrice: decimal.NewFromInt(980), CreatedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	addressJSON, err := json.Marshal(order.ShippingAddress)
	require.NoError(t, err)

	return order, addressJSON
}

func orderRow(rows *sqlmock.Rows, order *models.Order, addressJSON []byte) *sqlmock.Rows {
	return rows.AddRow(order.ID.String(), order.CustomerID.String(), order.IdempotencyKey, string(order.Status),
		order.Total.String(), string(order.Payment.Type), order.Payment.CardLast4, string(order.PaymentStatus),
		order.PaymentIntentID, addressJSON, order.CreatedAt, order.UpdatedAt)
}

func itemRows(order *models.Order) *sqlmock.Rows {
	rows := sqlmock.NewRows(itemRowColumns)
	for _, item := range order.Items {
		rows.AddRow(item.ID.String(), order.ID.String(), item.ProductID, item.Name, item.Quantity,
			item.UnitPrice.String(), item.ImageURL, item.CreatedAt)
	}
	return rows
}

func TestCreateOrder(t *testing.T) {
	ctx := t.Context()
	order, addressJSON := sampleOrder(t)

	insertOrder := regexp.QuoteMeta(`INSERT INTO orders`)
	insertItem := regexp.QuoteMeta(`INSERT INTO order_items`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectBegin()
		mock.ExpectExec(insertOrder).
			WithArgs(order.ID, order.CustomerID, order.IdempotencyKey, order.Status, order.Total,
				order.Payment.Type, order.Payment.CardLast4, order.PaymentStatus, order.PaymentIntentID,
				addressJSON, order.CreatedAt, order.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		for _, item := range order.Items {
			mock.ExpectExec(insertItem).
				WithArgs(item.ID, order.ID, item.ProductID, item.Name, item.Quantity, item.UnitPrice, item.ImageURL, item.CreatedAt).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}
		mock.ExpectCommit()

		// Act
		err := repo.CreateOrder(ctx, order)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Duplicate Idempotency Key", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectBegin()
		mock.ExpectExec(insertOrder).WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value"})
		mock.ExpectRollback()

		// Act
		err := repo.CreateOrder(ctx, order)

		// Assert
		assert.ErrorIs(t, err, repository.ErrDuplicateOrder)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Item Insert Rolls Back", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		dbErr := errors.New("check constraint violated")
		mock.ExpectBegin()
		mock.ExpectExec(insertOrder).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(insertItem).WillReturnError(dbErr)
		mock.ExpectRollback()

		// Act
		err := repo.CreateOrder(ctx, order)

		// Assert
		assert.ErrorIs(t, err, dbErr)
		assert.ErrorContains(t, err, "failed to insert an order item")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Begin Error", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

		// Act
		err := repo.CreateOrder(ctx, order)

		// Assert
		assert.ErrorContains(t, err, "failed to begin transaction")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetOrderByID(t *testing.T) {
	ctx := t.Context()
	order, addressJSON := sampleOrder(t)
	query := regexp.QuoteMeta(`FROM orders WHERE id = $1`)
	itemsQuery := regexp.QuoteMeta(`FROM order_items`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectQuery(query).
			WithArgs(order.ID).
			WillReturnRows(orderRow(sqlmock.NewRows(orderRowColumns), order, addressJSON))
		mock.ExpectQuery(itemsQuery).
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(itemRows(order))

		// Act
		got, err := repo.GetOrderByID(ctx, order.ID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, order.ID, got.ID)
		assert.Equal(t, order.IdempotencyKey, got.IdempotencyKey)
		assert.True(t, order.Total.Equal(got.Total))
		assert.Equal(t, order.Payment, got.Payment)
		assert.Equal(t, order.ShippingAddress, got.ShippingAddress)
		require.Len(t, got.Items, 2)
		assert.Equal(t, "tee-01", got.Items[0].ProductID)
		assert.Equal(t, order.ID, got.Items[1].OrderID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectQuery(query).WithArgs(order.ID).WillReturnError(sql.ErrNoRows)

		// Act
		got, err := repo.GetOrderByID(ctx, order.ID)

		// Assert
		assert.Nil(t, got)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Items Query Error", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectQuery(query).
			WithArgs(order.ID).
			WillReturnRows(orderRow(sqlmock.NewRows(orderRowColumns), order, addressJSON))
		mock.ExpectQuery(itemsQuery).WillReturnError(errors.New("statement timeout"))

		// Act
		_, err := repo.GetOrderByID(ctx, order.ID)

		// Assert
		assert.ErrorContains(t, err, "failed to get the order items")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetOrderByIdempotencyKey(t *testing.T) {
	ctx := t.Context()
	order, addressJSON := sampleOrder(t)
	query := regexp.QuoteMeta(`FROM orders WHERE customer_id = $1 AND idempotency_key = $2`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectQuery(query).
			WithArgs(order.CustomerID, order.IdempotencyKey).
			WillReturnRows(orderRow(sqlmock.NewRows(orderRowColumns), order, addressJSON))
		mock.ExpectQuery(regexp.QuoteMeta(`FROM order_items`)).WillReturnRows(itemRows(order))

		// Act
		got, err := repo.GetOrderByIdempotencyKey(ctx, order.CustomerID, order.IdempotencyKey)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, order.ID, got.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Unknown Key", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectQuery(query).WithArgs(order.CustomerID, "unknown").WillReturnError(sql.ErrNoRows)

		// Act
		_, err := repo.GetOrderByIdempotencyKey(ctx, order.CustomerID, "unknown")

		// Assert
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListOrdersByCustomer(t *testing.T) {
	ctx := t.Context()
	first, addressJSON := sampleOrder(t)
	second, _ := sampleOrder(t)
	second.CustomerID = first.CustomerID
	customerID := first.CustomerID

	countQuery := regexp.QuoteMeta(`SELECT COUNT(*) FROM orders WHERE customer_id = $1`)
	listQuery := regexp.QuoteMeta(`LIMIT $2 OFFSET $3`)

	t.Run("Success - Second Page", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectQuery(countQuery).WithArgs(customerID).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

		rows := sqlmock.NewRows(orderRowColumns)
		orderRow(rows, first, addressJSON)
		orderRow(rows, second, addressJSON)
		mock.ExpectQuery(listQuery).WithArgs(customerID, 10, 10).WillReturnRows(rows)

		items := sqlmock.NewRows(itemRowColumns).
			AddRow(uuid.NewString(), first.ID.String(), "tee-01", "T-shirt", 2, "1500", "", first.CreatedAt).
			AddRow(uuid.NewString(), second.ID.String(), "cap-02", "Cap", 1, "980", "", second.CreatedAt).
			AddRow(uuid.NewString(), second.ID.String(), "bag-03", "Bag", 1, "4200", "", second.CreatedAt)
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE order_id = ANY($1)`)).WithArgs(sqlmock.AnyArg()).WillReturnRows(items)

		// Act
		orders, total, err := repo.ListOrdersByCustomer(ctx, customerID, 2, 10)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		require.Len(t, orders, 2)
		assert.Len(t, orders[0].Items, 1)
		assert.Len(t, orders[1].Items, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - No Orders Skips Items Query", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectQuery(countQuery).WithArgs(customerID).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(listQuery).WithArgs(customerID, 10, 0).WillReturnRows(sqlmock.NewRows(orderRowColumns))

		// Act
		orders, total, err := repo.ListOrdersByCustomer(ctx, customerID, 1, 10)

		// Assert
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, orders)
		assert.NotNil(t, orders)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Count Error", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectQuery(countQuery).WillReturnError(errors.New("relation does not exist"))

		// Act
		_, _, err := repo.ListOrdersByCustomer(ctx, customerID, 1, 10)

		// Assert
		assert.ErrorContains(t, err, "failed to count orders")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := t.Context()
	orderID := uuid.New()
	query := regexp.QuoteMeta(`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectExec(query).
			WithArgs(models.OrderStatusShipped, sqlmock.AnyArg(), orderID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.UpdateOrderStatus(ctx, orderID, models.OrderStatusShipped)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectExec(query).WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repo.UpdateOrderStatus(ctx, orderID, models.OrderStatusShipped)

		// Assert
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdatePaymentStatus(t *testing.T) {
	ctx := t.Context()
	query := regexp.QuoteMeta(`UPDATE orders SET payment_status = $1, updated_at = $2`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		orderID, customerID := uuid.New(), uuid.New()
		mock.ExpectQuery(query).
			WithArgs(models.PaymentStatusPaid, sqlmock.AnyArg(), "pi_123").
			WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id"}).AddRow(orderID, customerID))

		// Act
		gotOrder, gotCustomer, err := repo.UpdatePaymentStatus(ctx, "pi_123", models.PaymentStatusPaid)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, orderID, gotOrder)
		assert.Equal(t, customerID, gotCustomer)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Unknown Intent", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectQuery(query).WillReturnError(sql.ErrNoRows)

		// Act
		_, _, err := repo.UpdatePaymentStatus(ctx, "pi_missing", models.PaymentStatusFailed)

		// Assert
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
