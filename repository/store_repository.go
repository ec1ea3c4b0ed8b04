package repository

import (
	"context"
	"fmt"

	"salestrend/database"
	"salestrend/models"
)

// StoreRepository reads the demo store's catalogue, customers and orders.
type StoreRepository struct {
	db database.DBTX
}

func NewStoreRepository(db database.DBTX) *StoreRepository {
	return &StoreRepository{db: db}
}

// Products returns the whole catalogue ordered by id.
func (r *StoreRepository) Products(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, price::float8, stock_quantity, category, sku, is_active, created_at, updated_at
		FROM products
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity, &p.Category, &p.SKU,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return products, nil
}

// Customers returns one page of customers and the total count.
func (r *StoreRepository) Customers(ctx context.Context, limit, offset int) ([]models.Customer, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM customers").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, created_at
		FROM customers
		ORDER BY id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := make([]models.Customer, 0)
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read customers: %w", err)
	}
	return customers, total, nil
}

// RecentOrders returns the latest orders, newest first, with their items.
func (r *StoreRepository) RecentOrders(ctx context.Context, limit int) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, customer_id, order_number, status, total_amount::float8, shipping_address,
			order_date, shipped_date, delivered_date
		FROM orders
		ORDER BY order_date DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	index := make(map[int64]int)
	ids := make([]int64, 0)
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.OrderNumber, &o.Status, &o.TotalAmount, &o.ShippingAddress,
			&o.OrderDate, &o.ShippedDate, &o.DeliveredDate); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		index[o.ID] = len(orders)
		ids = append(ids, o.ID)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price::float8, total_price::float8
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, id`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it models.OrderItem
		if err := itemRows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		if i, ok := index[it.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order items: %w", err)
	}
	return orders, nil
}

// DailyTotals returns store-wide counted sales per day over the trailing
// window, newest day first.
func (r *StoreRepository) DailyTotals(ctx context.Context, days int) ([]models.DailyTotal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			DATE(o.order_date) AS sales_date,
			SUM(o.total_amount)::float8 AS total_sales_amount,
			COUNT(o.id) AS number_of_orders,
			COUNT(DISTINCT o.customer_id) AS unique_customers
		FROM orders o
		WHERE o.status = ANY($1)
			AND o.order_date >= NOW() - make_interval(days => $2)
		GROUP BY DATE(o.order_date)
		ORDER BY sales_date DESC`, models.CountedOrderStatuses, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily totals: %w", err)
	}
	defer rows.Close()

	totals := make([]models.DailyTotal, 0)
	for rows.Next() {
		var d models.DailyTotal
		if err := rows.Scan(&d.Date, &d.TotalSales, &d.Orders, &d.UniqueCustomers); err != nil {
			return nil, fmt.Errorf("failed to scan daily total: %w", err)
		}
		totals = append(totals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read daily totals: %w", err)
	}
	return totals, nil
}
