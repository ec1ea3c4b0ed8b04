package routes

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"salestrend/config"
	"salestrend/handlers"
	"salestrend/models"
	"salestrend/repository"
	"salestrend/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type emptyAnalytics struct{}

func (emptyAnalytics) ProductAnalytics(context.Context, int, int) ([]models.ProductAnalytics, int, error) {
	return nil, 0, nil
}

func (emptyAnalytics) StoreAnalytics(context.Context) (models.StoreAnalytics, error) {
	return models.StoreAnalytics{}, nil
}

// emptyFleet is a fleet store with no employees or devices.
type emptyFleet struct{}

func (emptyFleet) Employees(context.Context, string) ([]models.EmployeeWithDevices, error) {
	return []models.EmployeeWithDevices{}, nil
}

func (emptyFleet) Employee(context.Context, string) (models.Employee, error) {
	return models.Employee{}, repository.ErrEmployeeNotFound
}

func (emptyFleet) CreateEmployee(context.Context, string, string) (models.Employee, error) {
	return models.Employee{}, nil
}

func (emptyFleet) UpdateEmployee(context.Context, string, *string, *string) (models.Employee, error) {
	return models.Employee{}, repository.ErrEmployeeNotFound
}

func (emptyFleet) DeleteEmployee(context.Context, string) error { return repository.ErrEmployeeNotFound }

func (emptyFleet) Devices(context.Context, models.DeviceFilter) ([]models.DeviceWithEmployee, error) {
	return []models.DeviceWithEmployee{}, nil
}

func (emptyFleet) Device(context.Context, string) (models.DeviceWithEmployee, error) {
	return models.DeviceWithEmployee{}, repository.ErrDeviceNotFound
}

func (emptyFleet) CreateDevice(context.Context, string, string, *string) (models.Device, error) {
	return models.Device{}, nil
}

func (emptyFleet) UpdateDevice(context.Context, string, models.DeviceUpdate) (models.Device, error) {
	return models.Device{}, repository.ErrDeviceNotFound
}

func (emptyFleet) DeleteDevice(context.Context, string) error { return repository.ErrDeviceNotFound }

func bearer(t *testing.T, role string) string {
	t.Helper()
	claims := models.JwtClaims{
		UserID: "u-1",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.AppConfig.JWTSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func TestSetupRoutes(t *testing.T) {
	config.AppConfig.JWTSecret = "routes-secret"

	app := fiber.New()
	SetupRoutes(app, Handlers{
		Auth:        &handlers.AuthHandlers{Secret: []byte(config.AppConfig.JWTSecret)},
		Predictions: &handlers.PredictionHandlers{Analytics: emptyAnalytics{}, DefaultPeriod: 30, MaxPeriod: 365},
		Store:       &handlers.StoreHandlers{},
		Fleet:       &handlers.FleetHandlers{Fleet: service.NewFleetService(emptyFleet{})},
		DB:          okPinger{},
	})

	tests := []struct {
		name   string
		method string
		path   string
		role   string
		want   int
	}{
		{"health is public", "GET", "/health", "", 200},
		{"analytics needs a token", "GET", "/api/v1/predictions", "", 401},
		{"analyst reads analytics", "GET", "/api/v1/predictions", "analyst", 200},
		{"admin reads analytics", "GET", "/api/v1/predictions", "admin", 200},
		{"analyst cannot reset store", "POST", "/api/v1/ecommerce/init", "analyst", 403},
		{"analyst cannot drop store", "DELETE", "/api/v1/ecommerce", "analyst", 403},
		{"analyst cannot create users", "POST", "/api/v1/admin/users", "analyst", 403},
		{"analyst cannot list users", "GET", "/api/v1/admin/users", "analyst", 403},
		{"analyst lists employees", "GET", "/api/v1/employees", "analyst", 200},
		{"analyst lists devices", "GET", "/api/v1/devices", "analyst", 200},
		{"devices need a token", "GET", "/api/v1/devices", "", 401},
		{"analyst cannot create devices", "POST", "/api/v1/devices", "analyst", 403},
		{"analyst cannot assign devices", "POST", "/api/v1/devices/d-1/assign", "analyst", 403},
		{"analyst cannot delete employees", "DELETE", "/api/v1/employees/e-1", "analyst", 403},
		{"admin deletes missing employee", "DELETE", "/api/v1/employees/e-1", "admin", 404},
		{"unknown route", "GET", "/api/v1/merchant/invoices", "admin", 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.role != "" {
				req.Header.Set("Authorization", bearer(t, tt.role))
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
