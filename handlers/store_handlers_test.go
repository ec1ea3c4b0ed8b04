package handlers

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"salestrend/models"
	"salestrend/utils"

	"github.com/gofiber/fiber/v2"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleDropStore(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	app := fiber.New()
	app.Delete("/ecommerce", (&StoreHandlers{DB: mock}).HandleDropStore)

	for _, table := range []string{"order_items", "orders", "products", "customers"} {
		mock.ExpectExec("DROP TABLE IF EXISTS " + table).WillReturnResult(pgxmock.NewResult("DROP", 0))
	}
	resp, err := app.Test(httptest.NewRequest("DELETE", "/ecommerce", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	mock.ExpectExec("DROP TABLE IF EXISTS order_items").WillReturnError(errors.New("permission denied"))
	resp, err = app.Test(httptest.NewRequest("DELETE", "/ecommerce", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleStoreStatus_Unreachable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	app := fiber.New()
	app.Get("/ecommerce/status", (&StoreHandlers{DB: mock}).HandleStoreStatus)

	mock.ExpectQuery("SELECT to_regclass").WillReturnError(errors.New("no connection"))
	resp, err := app.Test(httptest.NewRequest("GET", "/ecommerce/status", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decode(t, resp.Body)
	assert.Equal(t, false, body["database_exists"])
	assert.Equal(t, "Database not accessible", body["error"])
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestHandleHealth(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", HandleHealth(fakePinger{}))
	app.Get("/down", HandleHealth(fakePinger{err: errors.New("refused")}))

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/down", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}

type fakeCatalogue struct {
	orders    []models.Order
	err       error
	gotLimit  int
	gotOffset int
	gotDays   int
}

func (f *fakeCatalogue) Products(context.Context) ([]models.Product, error) {
	return []models.Product{{ID: 1, Name: "Wireless Mouse", Price: 29.99}}, f.err
}

func (f *fakeCatalogue) Customers(_ context.Context, limit, offset int) ([]models.Customer, int, error) {
	f.gotLimit, f.gotOffset = limit, offset
	return []models.Customer{{ID: 1, Name: "Ada"}}, 1, f.err
}

func (f *fakeCatalogue) RecentOrders(_ context.Context, limit int) ([]models.Order, error) {
	f.gotLimit = limit
	return f.orders, f.err
}

func (f *fakeCatalogue) DailyTotals(_ context.Context, days int) ([]models.DailyTotal, error) {
	f.gotDays = days
	return []models.DailyTotal{}, f.err
}

func newCatalogueApp(h *StoreHandlers) *fiber.App {
	app := fiber.New()
	app.Get("/products", h.HandleListProducts)
	app.Get("/customers", h.HandleListCustomers)
	app.Get("/orders", h.HandleRecentOrders)
	app.Get("/daily-totals", h.HandleDailyTotals)
	return app
}

func TestStoreCatalogueHandlers(t *testing.T) {
	cat := &fakeCatalogue{orders: []models.Order{{ID: 9, OrderNumber: "ORD-9"}}}
	app := newCatalogueApp(&StoreHandlers{Catalogue: cat, MaxPeriod: 365})

	tests := []struct {
		path string
		want int
	}{
		{"/products", 200},
		{"/customers?page=2&pageSize=5", 200},
		{"/orders?limit=5", 200},
		{"/orders?limit=500", 400},
		{"/daily-totals?days=7", 200},
		{"/daily-totals?days=0", 400},
		{"/daily-totals?days=400", 400},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	_, err := app.Test(httptest.NewRequest("GET", "/customers?page=3&pageSize=5", nil))
	require.NoError(t, err)
	assert.Equal(t, 5, cat.gotLimit)
	assert.Equal(t, 10, cat.gotOffset)

	resp, err := app.Test(httptest.NewRequest("GET", "/customers?page=9223372036854775807&pageSize=100", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, (utils.MaxPage-1)*100, cat.gotOffset)
	assert.Equal(t, float64(utils.MaxPage), decode(t, resp.Body)["pagination"].(map[string]any)["currentPage"])

	resp, err = app.Test(httptest.NewRequest("GET", "/orders", nil))
	require.NoError(t, err)
	assert.Equal(t, 20, cat.gotLimit)
	data := decode(t, resp.Body)["data"].([]any)
	assert.Equal(t, "ORD-9", data[0].(map[string]any)["order_number"])

	_, err = app.Test(httptest.NewRequest("GET", "/daily-totals", nil))
	require.NoError(t, err)
	assert.Equal(t, 30, cat.gotDays)
}

func TestStoreCatalogueHandlers_Errors(t *testing.T) {
	app := newCatalogueApp(&StoreHandlers{Catalogue: &fakeCatalogue{err: errors.New("boom")}})
	for _, path := range []string{"/products", "/customers", "/orders", "/daily-totals"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode, path)
	}
}
