package database

import (
	"context"
	"fmt"

	"salestrend/models"
)

// Tables lists the service's tables in creation order.
var Tables = []string{"users", "customers", "products", "orders", "order_items", "employees", "devices"}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL,
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id             BIGSERIAL PRIMARY KEY,
		name           TEXT NOT NULL,
		description    TEXT,
		price          NUMERIC(10,2) NOT NULL,
		stock_quantity INTEGER NOT NULL DEFAULT 0,
		category       TEXT,
		sku            TEXT UNIQUE,
		is_active      BOOLEAN NOT NULL DEFAULT TRUE,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id               BIGSERIAL PRIMARY KEY,
		customer_id      BIGINT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		order_number     TEXT NOT NULL UNIQUE,
		status           TEXT NOT NULL,
		total_amount     NUMERIC(12,2) NOT NULL,
		shipping_address TEXT,
		order_date       TIMESTAMPTZ NOT NULL,
		shipped_date     TIMESTAMPTZ,
		delivered_date   TIMESTAMPTZ,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id          BIGSERIAL PRIMARY KEY,
		order_id    BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id  BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		quantity    INTEGER NOT NULL,
		unit_price  NUMERIC(10,2) NOT NULL,
		total_price NUMERIC(12,2) NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		role       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS devices (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		type        TEXT NOT NULL,
		employee_id TEXT REFERENCES employees(id) ON DELETE SET NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_order_date ON orders(order_date)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_product_id ON order_items(product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_devices_employee_id ON devices(employee_id)`,
}

// CreateSchema creates all tables and indexes that do not exist yet.
func CreateSchema(ctx context.Context, db DBTX) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// DropStoreSchema drops the demo store tables. Users, employees and devices
// are kept so operators can still log in after a reset.
func DropStoreSchema(ctx context.Context, db DBTX) error {
	for _, table := range []string{"order_items", "orders", "products", "customers"} {
		if _, err := db.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}

// Status reports, for each table, whether it exists and its row count.
func Status(ctx context.Context, db DBTX) (models.DatabaseStatus, error) {
	status := models.DatabaseStatus{
		DatabaseExists: true,
		Tables:         make(map[string]models.TableStatus, len(Tables)),
	}

	for _, table := range Tables {
		var exists bool
		if err := db.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", table).Scan(&exists); err != nil {
			return models.DatabaseStatus{}, fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if !exists {
			status.Tables[table] = models.TableStatus{}
			continue
		}

		var count int64
		if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
			return models.DatabaseStatus{}, fmt.Errorf("failed to count table %s: %w", table, err)
		}
		status.Tables[table] = models.TableStatus{Exists: true, Count: count}
		status.TotalRecords += count
	}
	return status, nil
}
