package routes

import (
	"salestrend/handlers"
	"salestrend/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups everything SetupRoutes mounts.
type Handlers struct {
	Auth        *handlers.AuthHandlers
	Predictions *handlers.PredictionHandlers
	Store       *handlers.StoreHandlers
	Fleet       *handlers.FleetHandlers
	DB          handlers.Pinger
}

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App, h Handlers) {
	app.Get("/health", handlers.HandleHealth(h.DB))
	app.Get("/version", handlers.HandleVersion)

	api := app.Group("/api/v1")

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/login", h.Auth.HandleLogin)

	// --- Admin Routes ---
	admin := api.Group("/admin", middleware.Authenticate, middleware.AdminRequired)
	admin.Get("/users", h.Auth.HandleListUsers)
	admin.Post("/users", h.Auth.HandleCreateUser)
	admin.Put("/users/:userId/status", h.Auth.HandleSetUserStatus)

	// --- Prediction Routes ---
	predictions := api.Group("/predictions", middleware.Authenticate, middleware.AnalystRequired)
	predictions.Get("/", h.Predictions.HandleGetProductAnalytics)
	predictions.Post("/", h.Predictions.HandlePredictSales)
	predictions.Post("/insights", h.Predictions.HandlePredictionInsights)

	// --- E-commerce Store Routes ---
	store := api.Group("/ecommerce", middleware.Authenticate)
	store.Get("/status", middleware.AnalystRequired, h.Store.HandleStoreStatus)
	store.Get("/products", middleware.AnalystRequired, h.Store.HandleListProducts)
	store.Get("/customers", middleware.AnalystRequired, h.Store.HandleListCustomers)
	store.Get("/orders", middleware.AnalystRequired, h.Store.HandleRecentOrders)
	store.Get("/daily-totals", middleware.AnalystRequired, h.Store.HandleDailyTotals)
	store.Post("/init", middleware.AdminRequired, h.Store.HandleInitStore)
	store.Delete("/", middleware.AdminRequired, h.Store.HandleDropStore)

	// --- Employee & Device Routes ---
	employees := api.Group("/employees", middleware.Authenticate)
	employees.Get("/", middleware.AnalystRequired, h.Fleet.HandleListEmployees)
	employees.Get("/:id", middleware.AnalystRequired, h.Fleet.HandleGetEmployee)
	employees.Post("/", middleware.AdminRequired, h.Fleet.HandleCreateEmployee)
	employees.Put("/:id", middleware.AdminRequired, h.Fleet.HandleUpdateEmployee)
	employees.Delete("/:id", middleware.AdminRequired, h.Fleet.HandleDeleteEmployee)

	devices := api.Group("/devices", middleware.Authenticate)
	devices.Get("/", middleware.AnalystRequired, h.Fleet.HandleListDevices)
	devices.Get("/:id", middleware.AnalystRequired, h.Fleet.HandleGetDevice)
	devices.Post("/", middleware.AdminRequired, h.Fleet.HandleCreateDevice)
	devices.Put("/:id", middleware.AdminRequired, h.Fleet.HandleUpdateDevice)
	devices.Post("/:id/assign", middleware.AdminRequired, h.Fleet.HandleAssignDevice)
	devices.Post("/:id/unassign", middleware.AdminRequired, h.Fleet.HandleUnassignDevice)
	devices.Delete("/:id", middleware.AdminRequired, h.Fleet.HandleDeleteDevice)
}
