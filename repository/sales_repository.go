package repository

import (
	"context"
	"errors"
	"fmt"

	"salestrend/database"
	"salestrend/models"
	"salestrend/prediction"
)

// ErrTablesMissing is returned when the store tables have not been created.
var ErrTablesMissing = errors.New("required tables missing, initialize the database first")

// SalesFilter narrows the sales history fed to the estimator.
type SalesFilter struct {
	// PeriodDays is the trailing window, in days, ending now.
	PeriodDays int
	// ProductIDs restricts the history to these products when non-empty.
	ProductIDs []int64
}

// SalesRepository reads sales history and store analytics.
type SalesRepository struct {
	db database.DBTX
}

func NewSalesRepository(db database.DBTX) *SalesRepository {
	return &SalesRepository{db: db}
}

const dailySalesQuery = `
	SELECT
		DATE(o.order_date) AS date,
		p.id AS product_id,
		p.name AS product_name,
		SUM(oi.total_price)::float8 AS daily_sales,
		SUM(oi.quantity) AS quantity_sold
	FROM orders o
	JOIN order_items oi ON o.id = oi.order_id
	JOIN products p ON oi.product_id = p.id
	WHERE o.status = ANY($1)
		AND o.order_date >= NOW() - make_interval(days => $2)
		%s
	GROUP BY DATE(o.order_date), p.id, p.name
	ORDER BY p.id, date`

// DailySales aggregates counted orders by day and product.
func (r *SalesRepository) DailySales(ctx context.Context, f SalesFilter) ([]prediction.Observation, error) {
	args := []any{models.CountedOrderStatuses, f.PeriodDays}
	productClause := ""
	if len(f.ProductIDs) > 0 {
		productClause = "AND p.id = ANY($3)"
		args = append(args, f.ProductIDs)
	}

	rows, err := r.db.Query(ctx, fmt.Sprintf(dailySalesQuery, productClause), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily sales: %w", err)
	}
	defer rows.Close()

	observations := make([]prediction.Observation, 0)
	for rows.Next() {
		var o prediction.Observation
		if err := rows.Scan(&o.Date, &o.ProductID, &o.ProductName, &o.DailySales, &o.QuantitySold); err != nil {
			return nil, fmt.Errorf("failed to scan daily sales: %w", err)
		}
		observations = append(observations, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read daily sales: %w", err)
	}
	return observations, nil
}

// ProductAnalytics returns lifetime per-product totals ordered by revenue,
// together with the number of products.
func (r *SalesRepository) ProductAnalytics(ctx context.Context, limit, offset int) ([]models.ProductAnalytics, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT
			p.id,
			p.name,
			p.price::float8,
			COUNT(oi.id) AS total_orders,
			COALESCE(SUM(oi.quantity), 0) AS total_quantity,
			COALESCE(SUM(oi.quantity * oi.unit_price), 0)::float8 AS total_revenue
		FROM products p
		LEFT JOIN order_items oi ON p.id = oi.product_id
		GROUP BY p.id, p.name, p.price
		ORDER BY total_revenue DESC, p.id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query product analytics: %w", err)
	}
	defer rows.Close()

	products := make([]models.ProductAnalytics, 0)
	for rows.Next() {
		var p models.ProductAnalytics
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.TotalOrders, &p.TotalQuantity, &p.TotalRevenue); err != nil {
			return nil, 0, fmt.Errorf("failed to scan product analytics: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read product analytics: %w", err)
	}
	return products, total, nil
}

// StoreAnalytics returns totals across all orders.
func (r *SalesRepository) StoreAnalytics(ctx context.Context) (models.StoreAnalytics, error) {
	var a models.StoreAnalytics
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(DISTINCT o.id),
			COUNT(DISTINCT oi.product_id),
			COUNT(DISTINCT o.customer_id),
			COALESCE(SUM(oi.quantity * oi.unit_price), 0)::float8,
			COALESCE(AVG(oi.quantity * oi.unit_price), 0)::float8
		FROM orders o
		JOIN order_items oi ON o.id = oi.order_id`).
		Scan(&a.TotalOrders, &a.TotalProducts, &a.TotalCustomers, &a.TotalRevenue, &a.AvgOrderValue)
	if err != nil {
		return models.StoreAnalytics{}, fmt.Errorf("failed to query store analytics: %w", err)
	}
	return a, nil
}

// TablesReady returns ErrTablesMissing unless products, orders and
// order_items all exist.
func (r *SalesRepository) TablesReady(ctx context.Context) error {
	var missing int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM unnest($1::text[]) AS t(name)
		WHERE to_regclass(t.name) IS NULL`,
		[]string{"products", "orders", "order_items"}).Scan(&missing)
	if err != nil {
		return fmt.Errorf("failed to check tables: %w", err)
	}
	if missing > 0 {
		return ErrTablesMissing
	}
	return nil
}
