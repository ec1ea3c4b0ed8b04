package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"salestrend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// DemoProduct is a catalogue entry of the demo store with the demand shape
// the seeder gives it.
type DemoProduct struct {
	Name     string
	Category string
	SKU      string
	Price    float64
	Stock    int
	// Weight is the relative share of orders the product appears in.
	Weight float64
	// Growth is the relative change of Weight over the seeded window.
	Growth float64
	// WeekendLift multiplies Weight on Saturdays and Sundays.
	WeekendLift float64
}

// DemoCatalogue is the product list seeded by Seed.
var DemoCatalogue = []DemoProduct{
	{Name: "Wireless Mouse", Category: "Accessories", SKU: "ACC-MOU-001", Price: 29.99, Stock: 150, Weight: 6, Growth: 0.8, WeekendLift: 1},
	{Name: "Mechanical Keyboard", Category: "Accessories", SKU: "ACC-KEY-002", Price: 89.99, Stock: 80, Weight: 4, Growth: 0, WeekendLift: 1},
	{Name: "27\" Monitor", Category: "Displays", SKU: "DSP-MON-003", Price: 249.99, Stock: 40, Weight: 3, Growth: -0.6, WeekendLift: 1},
	{Name: "USB-C Hub", Category: "Accessories", SKU: "ACC-HUB-004", Price: 39.99, Stock: 120, Weight: 5, Growth: 0.3, WeekendLift: 1},
	{Name: "Noise Cancelling Headphones", Category: "Audio", SKU: "AUD-HEA-005", Price: 149.99, Stock: 60, Weight: 3, Growth: 0, WeekendLift: 2.5},
	{Name: "Laptop Stand", Category: "Ergonomics", SKU: "ERG-STA-006", Price: 45.5, Stock: 90, Weight: 2, Growth: -0.3, WeekendLift: 1},
	{Name: "Webcam HD", Category: "Video", SKU: "VID-CAM-007", Price: 59.99, Stock: 70, Weight: 2, Growth: 1.2, WeekendLift: 0.5},
	{Name: "Portable SSD 1TB", Category: "Storage", SKU: "STO-SSD-008", Price: 119.99, Stock: 50, Weight: 2.5, Growth: 0.1, WeekendLift: 1.8},
}

var demoCustomers = []string{
	"Alice Martin", "Bruno Silva", "Chloe Dubois", "Daniel Okafor", "Emma Schulz",
	"Farid Haddad", "Grace Lee", "Hugo Moreau", "Ines Costa", "Jonas Berg",
}

// SeedOptions controls demo data generation.
type SeedOptions struct {
	Days int
	Seed uint64
	Now  time.Time
}

// DemoItem is one line of a generated order; ProductIndex points into the
// catalogue passed to GenerateDemoOrders.
type DemoItem struct {
	ProductIndex int
	Quantity     int
	UnitPrice    float64
}

// DemoOrder is one generated order; CustomerIndex points into the customer
// list.
type DemoOrder struct {
	CustomerIndex int
	OrderNumber   string
	Status        string
	OrderDate     time.Time
	Items         []DemoItem
}

// Total is the sum of the order's line totals.
func (o DemoOrder) Total() float64 {
	var total float64
	for _, it := range o.Items {
		total += float64(it.Quantity) * it.UnitPrice
	}
	return math.Round(total*100) / 100
}

// GenerateDemoOrders produces a deterministic order history covering the
// opts.Days days up to and including opts.Now.
func GenerateDemoOrders(opts SeedOptions, catalogue []DemoProduct, customers int) []DemoOrder {
	if opts.Days < 1 || len(catalogue) == 0 || customers < 1 {
		return nil
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	today := time.Date(opts.Now.Year(), opts.Now.Month(), opts.Now.Day(), 0, 0, 0, 0, time.UTC)
	first := today.AddDate(0, 0, -(opts.Days - 1))

	var orders []DemoOrder
	for d := 0; d < opts.Days; d++ {
		date := first.AddDate(0, 0, d)
		progress := float64(d) / float64(max(1, opts.Days-1))
		weights := dayWeights(catalogue, date, progress)

		perDay := 4 + rng.IntN(7)
		for n := 0; n < perDay; n++ {
			order := DemoOrder{
				CustomerIndex: rng.IntN(customers),
				OrderNumber:   fmt.Sprintf("ORD-%s-%03d", date.Format("20060102"), n+1),
				Status:        pickStatus(rng),
				OrderDate:     date.Add(time.Duration(8+rng.IntN(12))*time.Hour + time.Duration(rng.IntN(60))*time.Minute),
			}

			lines := 1 + rng.IntN(3)
			used := make(map[int]bool, lines)
			for l := 0; l < lines; l++ {
				idx := pickWeighted(rng, weights)
				if used[idx] {
					continue
				}
				used[idx] = true
				order.Items = append(order.Items, DemoItem{
					ProductIndex: idx,
					Quantity:     1 + rng.IntN(3),
					UnitPrice:    catalogue[idx].Price,
				})
			}
			orders = append(orders, order)
		}
	}
	return orders
}

func dayWeights(catalogue []DemoProduct, date time.Time, progress float64) []float64 {
	weekend := date.Weekday() == time.Saturday || date.Weekday() == time.Sunday
	weights := make([]float64, len(catalogue))
	for i, p := range catalogue {
		w := p.Weight * math.Max(0.05, 1+p.Growth*progress)
		if weekend && p.WeekendLift > 0 {
			w *= p.WeekendLift
		}
		weights[i] = w
	}
	return weights
}

func pickWeighted(rng *rand.Rand, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	for i, w := range weights {
		if r < w {
			return i
		}
		r -= w
	}
	return len(weights) - 1
}

func pickStatus(rng *rand.Rand) string {
	switch r := rng.IntN(100); {
	case r < 75:
		return models.OrderStatusDelivered
	case r < 87:
		return models.OrderStatusShipped
	case r < 95:
		return models.OrderStatusPending
	default:
		return models.OrderStatusCancelled
	}
}

// Seed inserts the demo catalogue, customers and a generated order history
// in one transaction.
func Seed(ctx context.Context, db DBTX, opts SeedOptions) (models.SeedSummary, error) {
	var summary models.SeedSummary

	tx, err := db.Begin(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	customerIDs, err := insertReturningIDs(ctx, tx, len(demoCustomers), func(b *pgx.Batch, i int) {
		name := demoCustomers[i]
		email := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com"
		b.Queue(`INSERT INTO customers (name, email) VALUES ($1, $2)
			ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`, name, email)
	})
	if err != nil {
		return summary, fmt.Errorf("failed to insert customers: %w", err)
	}

	productIDs, err := insertReturningIDs(ctx, tx, len(DemoCatalogue), func(b *pgx.Batch, i int) {
		p := DemoCatalogue[i]
		b.Queue(`INSERT INTO products (name, price, stock_quantity, category, sku)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (sku) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price, updated_at = NOW()
			RETURNING id`, p.Name, p.Price, p.Stock, p.Category, p.SKU)
	})
	if err != nil {
		return summary, fmt.Errorf("failed to insert products: %w", err)
	}

	orders := GenerateDemoOrders(opts, DemoCatalogue, len(demoCustomers))
	orderIDs, err := insertReturningIDs(ctx, tx, len(orders), func(b *pgx.Batch, i int) {
		o := orders[i]
		var shipped, delivered *time.Time
		switch o.Status {
		case models.OrderStatusDelivered:
			s, d := o.OrderDate.Add(24*time.Hour), o.OrderDate.Add(72*time.Hour)
			shipped, delivered = &s, &d
		case models.OrderStatusShipped:
			s := o.OrderDate.Add(24 * time.Hour)
			shipped = &s
		}
		b.Queue(`INSERT INTO orders (customer_id, order_number, status, total_amount, order_date, shipped_date, delivered_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (order_number) DO NOTHING
			RETURNING id`, customerIDs[o.CustomerIndex], o.OrderNumber, o.Status, o.Total(), o.OrderDate, shipped, delivered)
	})
	if err != nil {
		return summary, fmt.Errorf("failed to insert orders: %w", err)
	}

	items := &pgx.Batch{}
	for i, o := range orders {
		if orderIDs[i] == 0 {
			continue
		}
		summary.Orders++
		for _, it := range o.Items {
			items.Queue(`INSERT INTO order_items (order_id, product_id, quantity, unit_price, total_price)
				VALUES ($1, $2, $3, $4, $5)`,
				orderIDs[i], productIDs[it.ProductIndex], it.Quantity, it.UnitPrice, float64(it.Quantity)*it.UnitPrice)
			summary.OrderItems++
		}
	}
	if items.Len() > 0 {
		if err := tx.SendBatch(ctx, items).Close(); err != nil {
			return summary, fmt.Errorf("failed to insert order items: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return summary, fmt.Errorf("failed to commit seed: %w", err)
	}

	summary.Customers = len(customerIDs)
	summary.Products = len(productIDs)
	log.Printf("[SEED] Inserted %d customers, %d products, %d orders, %d order items",
		summary.Customers, summary.Products, summary.Orders, summary.OrderItems)
	return summary, nil
}

// insertReturningIDs queues n statements that each return one id and reads
// them back in order. A statement that returns no row yields id 0.
func insertReturningIDs(ctx context.Context, db DBTX, n int, queue func(b *pgx.Batch, i int)) ([]int64, error) {
	ids := make([]int64, n)
	if n == 0 {
		return ids, nil
	}

	b := &pgx.Batch{}
	for i := 0; i < n; i++ {
		queue(b, i)
	}

	br := db.SendBatch(ctx, b)
	for i := 0; i < n; i++ {
		if err := br.QueryRow().Scan(&ids[i]); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			br.Close()
			return nil, err
		}
	}
	return ids, br.Close()
}

// EnsureAdmin creates or updates an active admin user with the given
// credentials.
func EnsureAdmin(ctx context.Context, db DBTX, email, password string) error {
	if email == "" || password == "" {
		return errors.New("admin email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("could not hash password: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, 'admin')
		ON CONFLICT (email) DO UPDATE
		SET password_hash = EXCLUDED.password_hash, role = 'admin', is_active = TRUE, updated_at = NOW()`,
		uuid.NewString(), "Administrator", email, string(hash))
	if err != nil {
		return fmt.Errorf("could not upsert admin user: %w", err)
	}
	return nil
}
