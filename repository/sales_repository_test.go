package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"salestrend/models"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dailySalesColumns = []string{"date", "product_id", "product_name", "daily_sales", "quantity_sold"}

func TestDailySales(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSalesRepository(mock)
	d1 := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT\\s+DATE\\(o.order_date\\)").
		WithArgs(models.CountedOrderStatuses, 30).
		WillReturnRows(pgxmock.NewRows(dailySalesColumns).
			AddRow(d1, int64(1), "Wireless Mouse", 59.98, int64(2)).
			AddRow(d1.AddDate(0, 0, 1), int64(1), "Wireless Mouse", 29.99, int64(1)))

	obs, err := repo.DailySales(context.Background(), SalesFilter{PeriodDays: 30})
	require.NoError(t, err)
	require.Len(t, obs, 2)

	assert.Equal(t, d1, obs[0].Date)
	assert.Equal(t, int64(1), obs[0].ProductID)
	assert.Equal(t, "Wireless Mouse", obs[0].ProductName)
	assert.Equal(t, 59.98, obs[0].DailySales)
	assert.Equal(t, int64(2), obs[0].QuantitySold)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDailySales_ProductFilter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSalesRepository(mock)

	mock.ExpectQuery("AND p.id = ANY\\(\\$3\\)").
		WithArgs(models.CountedOrderStatuses, 60, []int64{3, 5}).
		WillReturnRows(pgxmock.NewRows(dailySalesColumns))

	obs, err := repo.DailySales(context.Background(), SalesFilter{PeriodDays: 60, ProductIDs: []int64{3, 5}})
	require.NoError(t, err)
	assert.NotNil(t, obs)
	assert.Empty(t, obs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDailySales_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset"))

	_, err = NewSalesRepository(mock).DailySales(context.Background(), SalesFilter{PeriodDays: 7})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestProductAnalytics(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery("LEFT JOIN order_items").
		WithArgs(2, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "price", "total_orders", "total_quantity", "total_revenue"}).
			AddRow(int64(3), "27\" Monitor", 249.99, int64(10), int64(12), 2999.88).
			AddRow(int64(1), "Wireless Mouse", 29.99, int64(40), int64(60), 1799.4))

	products, total, err := NewSalesRepository(mock).ProductAnalytics(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, products, 2)
	assert.Equal(t, "27\" Monitor", products[0].Name)
	assert.Equal(t, 2999.88, products[0].TotalRevenue)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreAnalytics(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("COUNT\\(DISTINCT o.id\\)").
		WillReturnRows(pgxmock.NewRows([]string{"orders", "products", "customers", "revenue", "avg"}).
			AddRow(int64(120), int64(8), int64(10), 15000.5, 62.5))

	a, err := NewSalesRepository(mock).StoreAnalytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StoreAnalytics{
		TotalOrders:    120,
		TotalProducts:  8,
		TotalCustomers: 10,
		TotalRevenue:   15000.5,
		AvgOrderValue:  62.5,
	}, a)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTablesReady(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSalesRepository(mock)

	mock.ExpectQuery("to_regclass").
		WithArgs([]string{"products", "orders", "order_items"}).
		WillReturnRows(pgxmock.NewRows([]string{"missing"}).AddRow(0))
	assert.NoError(t, repo.TablesReady(context.Background()))

	mock.ExpectQuery("to_regclass").
		WithArgs([]string{"products", "orders", "order_items"}).
		WillReturnRows(pgxmock.NewRows([]string{"missing"}).AddRow(2))
	assert.ErrorIs(t, repo.TablesReady(context.Background()), ErrTablesMissing)

	require.NoError(t, mock.ExpectationsWereMet())
}
