package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/urbanthreads/storefront-backend/pkg/db/models"
	"github.com/urbanthreads/storefront-backend/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE orders (
  id TEXT PRIMARY KEY,
  items TEXT NOT NULL,
  total NUMERIC NOT NULL,
  customer_email TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  payment_session_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, gdb.Exec(schema).Error)
	return gdb
}

func newStoredOrder() *models.Order {
	return &models.Order{
		ID: uuid.New(),
		Items: []models.OrderItem{
			{ProductID: 1, Name: "Urban Essential Tee", Price: decimal.NewFromInt(28), Quantity: 2},
		},
		Total:         decimal.RequireFromString("60.48"),
		CustomerEmail: "shopper@example.com",
		Status:        enums.OrderStatusPending,
	}
}

func TestRepositoryCreateAndFind(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))
	ctx := context.Background()

	order := newStoredOrder()
	created, err := repo.Create(ctx, order)
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "shopper@example.com", found.CustomerEmail)
	assert.Equal(t, enums.OrderStatusPending, found.Status)
	assert.True(t, found.Total.Equal(decimal.RequireFromString("60.48")))
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Urban Essential Tee", found.Items[0].Name)
}

func TestRepositoryFindMissing(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryMarkPaid(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))
	ctx := context.Background()

	order := newStoredOrder()
	_, err := repo.Create(ctx, order)
	require.NoError(t, err)

	require.NoError(t, repo.MarkPaid(ctx, order.ID, "cs_test_1"))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPaid, found.Status)
	require.NotNil(t, found.PaymentSessionID)
	assert.Equal(t, "cs_test_1", *found.PaymentSessionID)
}

func TestRepositoryMarkPaidKeepsSessionWhenBlank(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))
	ctx := context.Background()

	order := newStoredOrder()
	_, err := repo.Create(ctx, order)
	require.NoError(t, err)
	require.NoError(t, repo.MarkPaid(ctx, order.ID, "cs_first"))

	require.NoError(t, repo.MarkPaid(ctx, order.ID, ""))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, found.PaymentSessionID)
	assert.Equal(t, "cs_first", *found.PaymentSessionID)
}
