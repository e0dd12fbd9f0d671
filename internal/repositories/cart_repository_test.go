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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartRepoTest(t *testing.T) (repository.CartRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	return repository.NewCartRepo(db), mock
}

func TestGetCartByCustomerID(t *testing.T) {
	ctx := t.Context()
	customerID := uuid.NewString()
	updatedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	items := []models.CartItem{
		{ProductID: "tee-01", Name: "T-shirt", UnitPrice: decimal.NewFromInt(1500), Quantity: 2},
		{ProductID: "cap-02", Name: "Cap", UnitPrice: decimal.RequireFromString("980.50"), Quantity: 1},
	}
	itemsJSON, err := json.Marshal(items)
	require.NoError(t, err)

	query := regexp.QuoteMeta(`SELECT customer_id, items, updated_at`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)
		mock.ExpectQuery(query).
			WithArgs(customerID).
			WillReturnRows(sqlmock.NewRows([]string{"customer_id", "items", "updated_at"}).
				AddRow(customerID, itemsJSON, updatedAt))

		// Act
		cart, err := repo.GetCartByCustomerID(ctx, customerID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, customerID, cart.CustomerID)
		require.Len(t, cart.Items, 2)
		assert.Equal(t, "tee-01", cart.Items[0].ProductID)
		assert.True(t, cart.Items[1].UnitPrice.Equal(decimal.RequireFromString("980.5")))
		assert.Equal(t, updatedAt, cart.UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)
		mock.ExpectQuery(query).WithArgs(customerID).WillReturnError(sql.ErrNoRows)

		// Act
		cart, err := repo.GetCartByCustomerID(ctx, customerID)

		// Assert
		assert.Nil(t, cart)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)
		dbErr := errors.New("connection refused")
		mock.ExpectQuery(query).WithArgs(customerID).WillReturnError(dbErr)

		// Act
		_, err := repo.GetCartByCustomerID(ctx, customerID)

		// Assert
		assert.ErrorIs(t, err, dbErr)
		assert.ErrorContains(t, err, "querying database")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Corrupt Items", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)
		mock.ExpectQuery(query).
			WithArgs(customerID).
			WillReturnRows(sqlmock.NewRows([]string{"customer_id", "items", "updated_at"}).
				AddRow(customerID, []byte(`{"not":"a list"}`), updatedAt))

		// Act
		_, err := repo.GetCartByCustomerID(ctx, customerID)

		// Assert
		assert.ErrorContains(t, err, "failed to unmarshal cart items")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSaveCart(t *testing.T) {
	ctx := t.Context()
	customerID := uuid.NewString()
	updatedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta(`INSERT INTO carts (customer_id, items, updated_at)`)

	t.Run("Success - Upsert", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)
		cart := &models.Cart{
			CustomerID: customerID,
			Items:      []models.CartItem{{ProductID: "tee-01", Name: "T-shirt", UnitPrice: decimal.NewFromInt(1500), Quantity: 3}},
			UpdatedAt:  updatedAt,
		}
		itemsJSON, err := json.Marshal(cart.Items)
		require.NoError(t, err)

		mock.ExpectExec(query).
			WithArgs(customerID, itemsJSON, updatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err = repo.SaveCart(ctx, cart)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Empty Cart Stored As Empty List", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)
		mock.ExpectExec(query).
			WithArgs(customerID, []byte("[]"), updatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.SaveCart(ctx, &models.Cart{CustomerID: customerID, UpdatedAt: updatedAt})

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)
		dbErr := errors.New("deadlock detected")
		mock.ExpectExec(query).WillReturnError(dbErr)

		// Act
		err := repo.SaveCart(ctx, &models.Cart{CustomerID: customerID, UpdatedAt: updatedAt})

		// Assert
		assert.ErrorIs(t, err, dbErr)
		assert.ErrorContains(t, err, "failed to save the cart")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
