package handlers

import (
	"context"
	"log"
	"time"

	"salestrend/database"
	"salestrend/models"
	"salestrend/utils"

	"github.com/gofiber/fiber/v2"
)

// StoreCatalogue is the read side of the demo store.
type StoreCatalogue interface {
	Products(ctx context.Context) ([]models.Product, error)
	Customers(ctx context.Context, limit, offset int) ([]models.Customer, int, error)
	RecentOrders(ctx context.Context, limit int) ([]models.Order, error)
	DailyTotals(ctx context.Context, days int) ([]models.DailyTotal, error)
}

// StoreHandlers manages and browses the demo e-commerce tables.
type StoreHandlers struct {
	DB        database.DBTX
	Catalogue StoreCatalogue
	SeedDays  int
	SeedSeed  uint64
	Now       func() time.Time
	// MaxPeriod bounds the days accepted by HandleDailyTotals.
	MaxPeriod int
}

// HandleInitStore drops and recreates the store tables, then seeds demo data.
// POST /api/v1/ecommerce/init
func (h *StoreHandlers) HandleInitStore(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if err := database.DropStoreSchema(ctx, h.DB); err != nil {
		log.Printf("❌ [STORE] %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to initialize database"})
	}
	if err := database.CreateSchema(ctx, h.DB); err != nil {
		log.Printf("❌ [STORE] %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to initialize database"})
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	summary, err := database.Seed(ctx, h.DB, database.SeedOptions{Days: h.SeedDays, Seed: h.SeedSeed, Now: now()})
	if err != nil {
		log.Printf("❌ [STORE] %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to seed database"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "E-commerce database initialized successfully",
		"data":    summary,
	})
}

// HandleDropStore removes the store tables.
// DELETE /api/v1/ecommerce
func (h *StoreHandlers) HandleDropStore(c *fiber.Ctx) error {
	if err := database.DropStoreSchema(c.UserContext(), h.DB); err != nil {
		log.Printf("❌ [STORE] %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to delete database"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "E-commerce tables deleted successfully"})
}

// HandleStoreStatus reports the existence and row count of each table.
// GET /api/v1/ecommerce/status
func (h *StoreHandlers) HandleStoreStatus(c *fiber.Ctx) error {
	status, err := database.Status(c.UserContext(), h.DB)
	if err != nil {
		log.Printf("⚠️ [STORE] Status check failed: %v", err)
		return c.JSON(fiber.Map{
			"database_exists": false,
			"tables":          fiber.Map{},
			"total_records":   0,
			"error":           "Database not accessible",
		})
	}
	return c.JSON(status)
}

// HandleListProducts returns the catalogue.
// GET /api/v1/ecommerce/products
func (h *StoreHandlers) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.Catalogue.Products(c.UserContext())
	if err != nil {
		log.Printf("❌ [STORE] %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Error loading products"})
	}
	return c.JSON(fiber.Map{"success": true, "data": products})
}

// HandleListCustomers returns a page of customers.
// GET /api/v1/ecommerce/customers?page=1&pageSize=20
func (h *StoreHandlers) HandleListCustomers(c *fiber.Ctx) error {
	pageSize := c.QueryInt("pageSize", 20)
	if pageSize > 100 {
		pageSize = 100
	}
	pagination := utils.CreatePagination(0, c.QueryInt("page", 1), pageSize)

	customers, total, err := h.Catalogue.Customers(c.UserContext(), pagination.PageSize, pagination.Offset())
	if err != nil {
		log.Printf("❌ [STORE] %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Error loading customers"})
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"data":       customers,
		"pagination": utils.CreatePagination(total, pagination.CurrentPage, pagination.PageSize),
	})
}

// HandleRecentOrders returns the latest orders with their items.
// GET /api/v1/ecommerce/orders?limit=20
func (h *StoreHandlers) HandleRecentOrders(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "limit must be between 1 and 100"})
	}

	orders, err := h.Catalogue.RecentOrders(c.UserContext(), limit)
	if err != nil {
		log.Printf("❌ [STORE] %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Error loading orders"})
	}
	return c.JSON(fiber.Map{"success": true, "data": orders})
}

// HandleDailyTotals returns store-wide sales per day.
// GET /api/v1/ecommerce/daily-totals?days=30
func (h *StoreHandlers) HandleDailyTotals(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	if days < 1 || (h.MaxPeriod > 0 && days > h.MaxPeriod) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "days is out of range"})
	}

	totals, err := h.Catalogue.DailyTotals(c.UserContext(), days)
	if err != nil {
		log.Printf("❌ [STORE] %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Error loading daily totals"})
	}
	return c.JSON(fiber.Map{"success": true, "data": totals})
}
